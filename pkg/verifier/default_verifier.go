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
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
)

var (
	ErrMissingHeaders     = errors.New("missing signature headers")
	ErrUnknownIdentifier  = errors.New("unknown identifier")
	ErrMalformedSignature = errors.New("malformed signature")
	ErrSignatureMismatch  = errors.New("signature mismatch")
)

// DefaultVerifier implements SignatureVerifier with Ed25519 keys from a KeyResolver
type DefaultVerifier struct {
	resolver KeyResolver
}

// NewDefaultVerifier creates a new DefaultVerifier
func NewDefaultVerifier(resolver KeyResolver) *DefaultVerifier {
	return &DefaultVerifier{
		resolver: resolver,
	}
}

// VerifyRequest verifies the identity headers of req
func (v *DefaultVerifier) VerifyRequest(ctx context.Context, req *http.Request, versionedPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	identifier := req.Header.Get(signer.HeaderID)
	signature := req.Header.Get(signer.HeaderSignature)
	if identifier == "" || signature == "" {
		return "", ErrMissingHeaders
	}

	if err := v.Verify(ctx, req.Method, versionedPath, identifier, signature); err != nil {
		return "", err
	}

	return identifier, nil
}

// Verify checks signature over the canonical string of method, identifier
// and versionedPath
func (v *DefaultVerifier) Verify(ctx context.Context, method, versionedPath, identifier, signature string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if v.resolver == nil {
		return fmt.Errorf("key resolver not configured")
	}

	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(raw) != ed25519.SignatureSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, ed25519.SignatureSize, len(raw))
	}

	pubKey, err := v.resolver.ResolvePublicKey(ctx, identifier)
	if err != nil {
		return fmt.Errorf("failed to resolve public key: %w", err)
	}

	key, ok := pubKey.(ed25519.PublicKey)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, pubKey)
	}

	message := []byte(signer.CanonicalString(method, identifier, versionedPath))
	if !ed25519.Verify(key, message, raw) {
		return ErrSignatureMismatch
	}

	return nil
}
