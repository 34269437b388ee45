// Copyright (C) 2025 Mirotech Team
//
// This file is part of miropay-woocommerce-sdk.
//
// miropay-woocommerce-sdk is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// miropay-woocommerce-sdk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with miropay-woocommerce-sdk.  If not, see <https://www.gnu.org/licenses/>.

package sandbox

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/server"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/verifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sagecrypto "github.com/sage-x-project/sage/pkg/agent/crypto"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe
const ShutdownTimeout = 5 * time.Second

// Server is an in-memory processor
type Server struct {
	store    *Store
	resolver *verifier.StaticKeyResolver
	auth     *server.SignatureAuthMiddleware
	registry *prometheus.Registry
	metrics  *metrics
	logger   *zap.Logger
	baseURL  string
	handler  http.Handler
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBaseURL sets the public URL used for hosted payment links. By default
// it is derived from each request's Host header.
func WithBaseURL(baseURL string) Option {
	return func(s *Server) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRegistry sets the registry served on /metrics
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// New creates a sandbox with no registered merchants
func New(opts ...Option) *Server {
	s := &Server{
		store:    NewStore(),
		resolver: verifier.NewStaticKeyResolver(),
		registry: prometheus.NewRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("miropay.sandbox")
	s.metrics = newMetrics(s.registry, s.store)

	s.auth = server.NewSignatureAuthMiddleware(s.resolver)
	s.auth.SetLogger(s.logger)

	s.handler = s.routes()
	return s
}

// RegisterMerchant allows identifier to sign requests with publicKey
func (s *Server) RegisterMerchant(identifier string, publicKey crypto.PublicKey) error {
	if err := s.resolver.Register(identifier, publicKey); err != nil {
		return fmt.Errorf("failed to register merchant: %w", err)
	}
	s.logger.Info("merchant registered", zap.String("identifier", identifier))
	return nil
}

// RegisterMerchantKeyPair registers the public half of keyPair
func (s *Server) RegisterMerchantKeyPair(identifier string, keyPair sagecrypto.KeyPair) error {
	if keyPair == nil {
		return fmt.Errorf("key pair cannot be nil")
	}
	return s.RegisterMerchant(identifier, keyPair.PublicKey())
}

// Store returns the payment store
func (s *Server) Store() *Store {
	return s.store
}

// Registry returns the metrics registry
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. ready, if not nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready chan<- string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("sandbox listening", zap.String("addr", listener.Addr().String()))
	if ready != nil {
		ready <- listener.Addr().String()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	s.logger.Info("sandbox shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) routes() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /v1/payment/rest/{mode}/create", s.route("create", s.handleCreate))
	api.HandleFunc("GET /v1/payment/rest/{mode}/status/{ref}", s.route("status", s.handleStatus))
	api.HandleFunc("PATCH /v1/payment/rest/{mode}/cancel/{ref}", s.route("cancel", s.handleCancel))
	api.HandleFunc("GET /v1/payment/rest/{mode}/get-public-keys", s.route("get-public-keys", s.handlePublicKeys))

	mux := http.NewServeMux()
	mux.Handle("/v1/", s.auth.Wrap(api))
	mux.HandleFunc("GET /pay/{ref}", s.route("pay-page", s.handlePayPage))
	mux.HandleFunc("POST /pay/{ref}", s.route("pay", s.handlePay))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

func (s *Server) redirectBase(r *http.Request) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
