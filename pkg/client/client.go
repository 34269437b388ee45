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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sage-x-project/sage/pkg/agent/crypto"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a whole request, redirects and body read included
	DefaultTimeout = 30 * time.Second

	// DefaultContentType is sent on every request
	DefaultContentType = "application/json"
)

// maxRedirects matches the net/http default
const maxRedirects = 10

// emptyBody is sent for POST and PATCH calls without a payload
var emptyBody = []byte("[]")

// Config holds the settings of a Client. It is copied on construction.
type Config struct {
	// BaseURL is the processor endpoint, e.g. "https://api.pallawan.com/v1"
	BaseURL string

	// Identifier is the merchant id sent as x-id and covered by the signature
	Identifier string

	// KeyPair signs the canonical string of every request
	KeyPair crypto.KeyPair

	// ContentType defaults to DefaultContentType
	ContentType string

	// Timeout defaults to DefaultTimeout. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient replaces the pooled client built from Timeout, including its
	// redirect policy
	HTTPClient *http.Client

	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// Registerer enables request metrics when non-nil
	Registerer prometheus.Registerer

	// Signer defaults to signer.NewDefaultRequestSigner()
	Signer signer.RequestSigner
}

// Client is an HTTP client that signs every Miropay API call with the
// merchant key. It is safe for concurrent use.
type Client struct {
	baseURL     string
	identifier  string
	contentType string
	keyPair     crypto.KeyPair
	signer      signer.RequestSigner
	httpClient  *http.Client
	logger      *zap.Logger
	metrics     *Metrics
}

// NewClient creates a signing client from cfg
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", cfg.BaseURL)
	}

	if cfg.Identifier == "" {
		return nil, signer.ErrEmptyIdentifier
	}

	if cfg.KeyPair == nil {
		return nil, signer.ErrNilKeyPair
	}

	contentType := cfg.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Transport:     http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:       timeout,
			CheckRedirect: keepMethodOnRedirect,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	requestSigner := cfg.Signer
	if requestSigner == nil {
		requestSigner = signer.NewDefaultRequestSigner()
	}

	var metrics *Metrics
	if cfg.Registerer != nil {
		metrics, err = NewMetrics(cfg.Registerer)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL:     baseURL,
		identifier:  cfg.Identifier,
		contentType: contentType,
		keyPair:     cfg.KeyPair,
		signer:      requestSigner,
		httpClient:  httpClient,
		logger:      logger.Named("miropay.client"),
		metrics:     metrics,
	}, nil
}

// NewClientFromPEM derives the key pair from privateKeyPEM and creates a
// client. cfg.KeyPair is overwritten.
func NewClientFromPEM(cfg Config, privateKeyPEM string) (*Client, error) {
	keyPair, err := keys.DeriveFromPEM(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	cfg.KeyPair = keyPair
	return NewClient(cfg)
}

// Get sends a signed GET request for path, relative to the base URL
func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post sends a signed POST request with body encoded as JSON
func (c *Client) Post(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Patch sends a signed PATCH request with body encoded as JSON
func (c *Client) Patch(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Do executes one signed request. The request goes to "<baseURL>/<path>"
// while the signature covers "/v1/<path>", query included. Only POST and
// PATCH carry a body; for them a nil body is sent as "[]".
//
// Every HTTP response, 4xx and 5xx included, is returned as a Result. Network
// failures are returned as *TransportError.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Result, error) {
	// Check context first
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	path = strings.TrimLeft(path, "/")
	versionedPath := signer.VersionedPath(path)
	requestURL := c.baseURL + "/" + path

	var bodyReader io.Reader
	if method == http.MethodPost || method == http.MethodPatch {
		payload, err := encodeBody(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}

	req.Header.Set("content-type", c.contentType)

	if err := c.signer.SignRequest(ctx, req, versionedPath, c.identifier, c.keyPair); err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportFailure(method, versionedPath, requestURL, start, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportFailure(method, versionedPath, requestURL, start, fmt.Errorf("failed to read response body: %w", err))
	}

	elapsed := time.Since(start)
	c.metrics.observe(method, statusLabel(resp.StatusCode), elapsed)
	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", versionedPath),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed),
	)

	return newResult(resp.StatusCode, raw), nil
}

func (c *Client) transportFailure(method, versionedPath, requestURL string, start time.Time, err error) error {
	elapsed := time.Since(start)
	c.metrics.observe(method, "error", elapsed)
	c.logger.Warn("request failed",
		zap.String("method", method),
		zap.String("path", versionedPath),
		zap.Duration("duration", elapsed),
		zap.Error(err),
	)

	return &TransportError{Method: method, URL: requestURL, Err: err}
}

// keepMethodOnRedirect follows a redirect only when the method is kept. A
// 301, 302 or 303 that would turn a POST or PATCH into a GET is returned as
// the Result instead, because the signature covers the original method.
func keepMethodOnRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.Method != via[0].Method {
		return http.ErrUseLastResponse
	}
	return nil
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return emptyBody, nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	return payload, nil
}

// GetIdentifier returns the merchant identifier
func (c *Client) GetIdentifier() string {
	return c.identifier
}

// GetBaseURL returns the base URL without trailing slash
func (c *Client) GetBaseURL() string {
	return c.baseURL
}

// GetKeyPair returns the key pair
func (c *Client) GetKeyPair() crypto.KeyPair {
	return c.keyPair
}
