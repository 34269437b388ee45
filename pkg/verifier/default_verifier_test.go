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

package verifier

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/keys"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVerifier(t testing.TB) (*DefaultVerifier, *keys.KeyPair) {
	t.Helper()
	keyPair, _, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	resolver := NewStaticKeyResolver()
	require.NoError(t, resolver.RegisterKeyPair("merchant-1", keyPair))

	return NewDefaultVerifier(resolver), keyPair
}

func signedRequest(t testing.TB, keyPair *keys.KeyPair, method, versionedPath, identifier string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, versionedPath, nil)
	err := signer.NewDefaultRequestSigner().SignRequest(context.Background(), req, versionedPath, identifier, keyPair)
	require.NoError(t, err)
	return req
}

func TestDefaultVerifier_VerifyRequest(t *testing.T) {
	ctx := context.Background()
	v, keyPair := setupVerifier(t)

	req := signedRequest(t, keyPair, "POST", "/v1/payment/rest/live/create", "merchant-1")

	identifier, err := v.VerifyRequest(ctx, req, "/v1/payment/rest/live/create")
	require.NoError(t, err)
	assert.Equal(t, "merchant-1", identifier)
}

func TestDefaultVerifier_VerifyRequest_MissingHeaders(t *testing.T) {
	ctx := context.Background()
	v, keyPair := setupVerifier(t)

	req := httptest.NewRequest("GET", "/v1/payment/rest/live/status/1", nil)
	_, err := v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/1")
	assert.ErrorIs(t, err, ErrMissingHeaders)

	req = signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/status/1", "merchant-1")
	req.Header.Del(signer.HeaderSignature)
	_, err = v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/1")
	assert.ErrorIs(t, err, ErrMissingHeaders)
}

func TestDefaultVerifier_VerifyRequest_Tampering(t *testing.T) {
	ctx := context.Background()
	v, keyPair := setupVerifier(t)

	t.Run("different path", func(t *testing.T) {
		req := signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/status/1", "merchant-1")
		_, err := v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/2")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("different method", func(t *testing.T) {
		req := signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/cancel/1", "merchant-1")
		req.Method = "PATCH"
		_, err := v.VerifyRequest(ctx, req, "/v1/payment/rest/live/cancel/1")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("other merchant's key", func(t *testing.T) {
		other, _, err := keys.GenerateKeyPair()
		require.NoError(t, err)

		req := signedRequest(t, other, "GET", "/v1/payment/rest/live/status/1", "merchant-1")
		_, err = v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/1")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		req := signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/status/1", "merchant-2")
		_, err := v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/1")
		assert.ErrorIs(t, err, ErrUnknownIdentifier)
	})

	t.Run("malformed signature", func(t *testing.T) {
		req := signedRequest(t, keyPair, "GET", "/v1/payment/rest/live/status/1", "merchant-1")

		req.Header.Set(signer.HeaderSignature, "%%%not-base64")
		_, err := v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/1")
		assert.ErrorIs(t, err, ErrMalformedSignature)

		req.Header.Set(signer.HeaderSignature, base64.StdEncoding.EncodeToString([]byte("short")))
		_, err = v.VerifyRequest(ctx, req, "/v1/payment/rest/live/status/1")
		assert.ErrorIs(t, err, ErrMalformedSignature)
	})
}

func TestDefaultVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	v, keyPair := setupVerifier(t)

	signature, err := signer.NewDefaultRequestSigner().Sign(ctx, "GET", "/v1/x", "merchant-1", keyPair)
	require.NoError(t, err)

	assert.NoError(t, v.Verify(ctx, "GET", "/v1/x", "merchant-1", signature))
	assert.NoError(t, v.Verify(ctx, "get", "/v1/x", "merchant-1", signature))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, v.Verify(canceled, "GET", "/v1/x", "merchant-1", signature), context.Canceled)

	assert.Error(t, NewDefaultVerifier(nil).Verify(ctx, "GET", "/v1/x", "merchant-1", signature))
}

func TestStaticKeyResolver(t *testing.T) {
	ctx := context.Background()
	resolver := NewStaticKeyResolver()

	keyPair, _, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	assert.Error(t, resolver.Register("", keyPair.PublicKey()))

	ecdsaKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	assert.ErrorIs(t, resolver.Register("m", &ecdsaKey.PublicKey), ErrUnsupportedKey)
	assert.ErrorIs(t, resolver.Register("m", ed25519.PublicKey{1, 2, 3}), ErrUnsupportedKey)
	assert.Error(t, resolver.RegisterKeyPair("m", nil))

	require.NoError(t, resolver.RegisterKeyPair("b", keyPair))
	require.NoError(t, resolver.RegisterKeyPair("a", keyPair))
	assert.Equal(t, []string{"a", "b"}, resolver.Identifiers())

	pub, err := resolver.ResolvePublicKey(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, keyPair.Ed25519PublicKey(), pub)

	resolver.Remove("a")
	_, err = resolver.ResolvePublicKey(ctx, "a")
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestStaticKeyResolver_Concurrent(t *testing.T) {
	ctx := context.Background()
	resolver := NewStaticKeyResolver()

	keyPair, _, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, resolver.RegisterKeyPair("merchant", keyPair))
		}()
		go func() {
			defer wg.Done()
			_, _ = resolver.ResolvePublicKey(ctx, "merchant")
		}()
	}
	wg.Wait()

	_, err = resolver.ResolvePublicKey(ctx, "merchant")
	assert.NoError(t, err)
}
