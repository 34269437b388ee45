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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockVerifier for testing
type mockVerifier struct {
	shouldSucceed bool
	identifier    string
	seenPath      string
}

func (m *mockVerifier) VerifyRequest(ctx context.Context, req *http.Request, versionedPath string) (string, error) {
	m.seenPath = versionedPath
	if !m.shouldSucceed {
		return "", fmt.Errorf("signature verification failed")
	}
	return m.identifier, nil
}

func (m *mockVerifier) Verify(ctx context.Context, method, versionedPath, identifier, signature string) error {
	return nil
}

func signedRequest(t *testing.T, keyPair *keys.KeyPair, method, path string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	err := signer.NewDefaultRequestSigner().SignRequest(context.Background(), req, path, "merchant-1", keyPair)
	require.NoError(t, err)
	return req
}

func newResolver(t *testing.T) (*verifier.StaticKeyResolver, *keys.KeyPair) {
	t.Helper()
	keyPair, _, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	resolver := verifier.NewStaticKeyResolver()
	require.NoError(t, resolver.RegisterKeyPair("merchant-1", keyPair))
	return resolver, keyPair
}

// Test NewSignatureAuthMiddleware creates middleware with defaults
func TestNewSignatureAuthMiddleware(t *testing.T) {
	middleware := NewSignatureAuthMiddleware(verifier.NewStaticKeyResolver())

	assert.NotNil(t, middleware)
	assert.NotNil(t, middleware.verifier)
	assert.NotNil(t, middleware.pathMapper)
	assert.False(t, middleware.optional)
}

// Test middleware allows valid signed requests
func TestSignatureAuthMiddleware_ValidSignature(t *testing.T) {
	resolver, keyPair := newResolver(t)
	middleware := NewSignatureAuthMiddleware(resolver)

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true

		identifier, ok := IdentifierFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "merchant-1", identifier)

		w.WriteHeader(http.StatusOK)
	})

	req := signedRequest(t, keyPair, "POST", "/v1/payment/rest/live/create", []byte(`{"amount":"1"}`))

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// Test middleware rejects unsigned requests
func TestSignatureAuthMiddleware_MissingSignature(t *testing.T) {
	middleware := NewSignatureAuthMiddleware(verifier.NewStaticKeyResolver())

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/v1/payment/rest/live/create", nil)

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Contains(t, payload["message"], "missing signature")
	assert.EqualValues(t, http.StatusUnauthorized, payload["statusCode"])
}

// Test middleware rejects a signature over a different path
func TestSignatureAuthMiddleware_InvalidSignature(t *testing.T) {
	resolver, keyPair := newResolver(t)
	middleware := NewSignatureAuthMiddleware(resolver)

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/status/1", nil)
	req.URL.Path = "/v1/payment/rest/live/status/2"

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "signature mismatch")
}

// Test middleware with custom error handler
func TestSignatureAuthMiddleware_CustomErrorHandler(t *testing.T) {
	customErrorCalled := false
	customErrorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		customErrorCalled = true
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("custom error"))
	}

	middleware := NewSignatureAuthMiddlewareWithVerifier(&mockVerifier{shouldSucceed: false})
	middleware.SetErrorHandler(customErrorHandler)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/v1/test", nil)

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.True(t, customErrorCalled)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "custom error", rr.Body.String())
}

// Test middleware with optional verification
func TestSignatureAuthMiddleware_OptionalVerification(t *testing.T) {
	middleware := NewSignatureAuthMiddleware(verifier.NewStaticKeyResolver())
	middleware.SetOptional(true)

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true

		// identifier should not be in context for unsigned requests
		_, ok := IdentifierFromContext(r.Context())
		assert.False(t, ok)

		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/v1/test", nil)

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, rr.Code)

	// signed but invalid requests are still rejected
	req = httptest.NewRequest("GET", "/v1/test", nil)
	req.Header.Set(signer.HeaderID, "merchant-1")
	req.Header.Set(signer.HeaderSignature, "bogus")

	rr = httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Test custom path mapping for handlers mounted behind a prefix
func TestSignatureAuthMiddleware_PathMapper(t *testing.T) {
	resolver, keyPair := newResolver(t)
	middleware := NewSignatureAuthMiddleware(resolver)
	middleware.SetPathMapper(func(r *http.Request) string {
		return "/v1" + strings.TrimPrefix(r.URL.EscapedPath(), "/api")
	})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/payment/rest/live/status/1", nil)
	err := signer.NewDefaultRequestSigner().SignRequest(context.Background(), req, "/v1/payment/rest/live/status/1", "merchant-1", keyPair)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// Test the default mapper hands over the escaped path
func TestSignatureAuthMiddleware_DefaultPath(t *testing.T) {
	mock := &mockVerifier{shouldSucceed: true, identifier: "m"}
	middleware := NewSignatureAuthMiddlewareWithVerifier(mock)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	req := httptest.NewRequest("GET", "/v1/payment/rest/live/status/a%2Fb", nil)

	middleware.Wrap(handler).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "/v1/payment/rest/live/status/a%2Fb", mock.seenPath)
}

// Test the default mapper keeps the raw query
func TestSignatureAuthMiddleware_DefaultPathWithQuery(t *testing.T) {
	mock := &mockVerifier{shouldSucceed: true, identifier: "m"}
	middleware := NewSignatureAuthMiddlewareWithVerifier(mock)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	req := httptest.NewRequest("GET", "/v1/payment/rest/live/status/42?lang=en&x=a%20b", nil)

	middleware.Wrap(handler).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "/v1/payment/rest/live/status/42?lang=en&x=a%20b", mock.seenPath)
}

// Test a signature over path and query verifies, and one over the bare path does not
func TestSignatureAuthMiddleware_QuerySigned(t *testing.T) {
	resolver, keyPair := newResolver(t)
	middleware := NewSignatureAuthMiddleware(resolver)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/status/42?lang=en", nil)
	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/v1/payment/rest/live/status/42?lang=en", nil)
	err := signer.NewDefaultRequestSigner().SignRequest(context.Background(), req, "/v1/payment/rest/live/status/42", "merchant-1", keyPair)
	require.NoError(t, err)

	rr = httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Test IdentifierFromContext with missing identifier
func TestIdentifierFromContext_Missing(t *testing.T) {
	_, ok := IdentifierFromContext(context.Background())
	assert.False(t, ok)
}

// Test IdentifierFromContext with identifier
func TestIdentifierFromContext_Present(t *testing.T) {
	ctx := context.WithValue(context.Background(), identifierKey, "merchant-1")

	identifier, ok := IdentifierFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "merchant-1", identifier)
}

// Test middleware with OPTIONS request (CORS preflight)
func TestSignatureAuthMiddleware_OptionsRequest(t *testing.T) {
	middleware := NewSignatureAuthMiddleware(verifier.NewStaticKeyResolver())

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("OPTIONS", "/v1/test", nil)

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// Test middleware preserves request body
func TestSignatureAuthMiddleware_PreservesBody(t *testing.T) {
	resolver, keyPair := newResolver(t)
	middleware := NewSignatureAuthMiddleware(resolver)

	originalBody := []byte(`{"amount": "3000", "title": "important"}`)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, originalBody, body)

		w.WriteHeader(http.StatusOK)
	})

	req := signedRequest(t, keyPair, "POST", "/v1/payment/rest/live/create", originalBody)

	rr := httptest.NewRecorder()
	middleware.Wrap(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
