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
	"crypto"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sort"
	"sync"

	sagecrypto "github.com/sage-x-project/sage/pkg/agent/crypto"
)

// ErrUnsupportedKey is returned when a key is not an Ed25519 public key
var ErrUnsupportedKey = errors.New("unsupported public key")

// KeyResolver resolves the public key a merchant signs with
type KeyResolver interface {
	// ResolvePublicKey returns the key registered for identifier or an
	// error wrapping ErrUnknownIdentifier
	ResolvePublicKey(ctx context.Context, identifier string) (crypto.PublicKey, error)
}

// StaticKeyResolver is an in-memory KeyResolver. It is safe for concurrent use.
type StaticKeyResolver struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

// NewStaticKeyResolver creates an empty resolver
func NewStaticKeyResolver() *StaticKeyResolver {
	return &StaticKeyResolver{
		keys: make(map[string]ed25519.PublicKey),
	}
}

// Register stores publicKey for identifier, replacing any previous key
func (r *StaticKeyResolver) Register(identifier string, publicKey crypto.PublicKey) error {
	if identifier == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	key, ok := publicKey.(ed25519.PublicKey)
	if !ok || len(key) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, publicKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys[identifier] = append(ed25519.PublicKey(nil), key...)
	return nil
}

// RegisterKeyPair stores the public half of keyPair for identifier
func (r *StaticKeyResolver) RegisterKeyPair(identifier string, keyPair sagecrypto.KeyPair) error {
	if keyPair == nil {
		return fmt.Errorf("key pair cannot be nil")
	}
	return r.Register(identifier, keyPair.PublicKey())
}

// Remove deletes the key for identifier
func (r *StaticKeyResolver) Remove(identifier string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.keys, identifier)
}

// ResolvePublicKey implements KeyResolver
func (r *StaticKeyResolver) ResolvePublicKey(ctx context.Context, identifier string) (crypto.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keys[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}
	return key, nil
}

// Identifiers returns the registered identifiers in sorted order
func (r *StaticKeyResolver) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.keys))
	for id := range r.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
