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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/verifier"
	"go.uber.org/zap"
)

// contextKey is a private type for context keys
type contextKey string

const identifierKey contextKey = "miropay-identifier"

// ErrorHandler handles verification errors
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// PathMapper returns the versioned path the client signed for r
type PathMapper func(r *http.Request) string

// SignatureAuthMiddleware provides HTTP middleware for request signature verification
type SignatureAuthMiddleware struct {
	verifier     verifier.SignatureVerifier
	errorHandler ErrorHandler
	pathMapper   PathMapper
	logger       *zap.Logger
	optional     bool
}

// NewSignatureAuthMiddleware creates middleware verifying against keys from resolver
func NewSignatureAuthMiddleware(resolver verifier.KeyResolver) *SignatureAuthMiddleware {
	return NewSignatureAuthMiddlewareWithVerifier(verifier.NewDefaultVerifier(resolver))
}

// NewSignatureAuthMiddlewareWithVerifier creates middleware with a custom verifier
func NewSignatureAuthMiddlewareWithVerifier(sigVerifier verifier.SignatureVerifier) *SignatureAuthMiddleware {
	return &SignatureAuthMiddleware{
		verifier:     sigVerifier,
		errorHandler: defaultErrorHandler,
		pathMapper:   defaultPathMapper,
		logger:       zap.NewNop(),
		optional:     false,
	}
}

// SetErrorHandler sets a custom error handler
func (m *SignatureAuthMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetPathMapper sets how the signed path is derived from the request.
// The default uses the escaped request path and raw query, which matches
// when the handler is mounted under /v1.
func (m *SignatureAuthMiddleware) SetPathMapper(mapper PathMapper) {
	m.pathMapper = mapper
}

// SetLogger sets the logger for rejected requests
func (m *SignatureAuthMiddleware) SetLogger(logger *zap.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetOptional sets whether signature verification is optional
// If true, requests without signature headers are allowed to pass through
func (m *SignatureAuthMiddleware) SetOptional(optional bool) {
	m.optional = optional
}

// Wrap wraps an HTTP handler with signature authentication
func (m *SignatureAuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip verification for OPTIONS requests (CORS preflight)
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get(signer.HeaderID) == "" && r.Header.Get(signer.HeaderSignature) == "" && m.optional {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		versionedPath := m.pathMapper(r)
		identifier, err := m.verifier.VerifyRequest(ctx, r, versionedPath)
		if err != nil {
			m.logger.Info("rejected request",
				zap.String("method", r.Method),
				zap.String("path", versionedPath),
				zap.String("identifier", r.Header.Get(signer.HeaderID)),
				zap.Error(err),
			)
			m.errorHandler(w, r, fmt.Errorf("signature verification failed: %w", err))
			return
		}

		ctx = context.WithValue(ctx, identifierKey, identifier)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentifierFromContext returns the verified merchant identifier
func IdentifierFromContext(ctx context.Context) (string, bool) {
	identifier, ok := ctx.Value(identifierKey).(string)
	return identifier, ok
}

// defaultPathMapper returns the escaped path and query as received
func defaultPathMapper(r *http.Request) string {
	if r.URL.RawQuery != "" {
		return r.URL.EscapedPath() + "?" + r.URL.RawQuery
	}
	return r.URL.EscapedPath()
}

// defaultErrorHandler writes a 401 JSON body in the processor's error shape
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"message":    fmt.Sprintf("Unauthorized: %s", err.Error()),
	})
}
