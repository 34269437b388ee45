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

package keys

import (
	stdcrypto "crypto"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/sage-x-project/sage/pkg/agent/crypto"
)

var _ crypto.KeyPair = (*KeyPair)(nil)

// KeyPair is an Ed25519 signing keypair derived from a merchant private key.
// It is immutable and safe for concurrent use.
type KeyPair struct {
	id         string
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

func newKeyPair(privateKey ed25519.PrivateKey) *KeyPair {
	publicKey := privateKey.Public().(ed25519.PublicKey)

	return &KeyPair{
		id:         Fingerprint(publicKey),
		privateKey: privateKey,
		publicKey:  publicKey,
	}
}

// Fingerprint returns the hex encoding of the first 8 bytes of the SHA-256
// of publicKey.
func Fingerprint(publicKey ed25519.PublicKey) string {
	sum := sha256.Sum256(publicKey)
	return hex.EncodeToString(sum[:8])
}

// ID returns a short fingerprint of the public key.
func (k *KeyPair) ID() string {
	return k.id
}

// PublicKey returns the ed25519.PublicKey.
func (k *KeyPair) PublicKey() stdcrypto.PublicKey {
	return k.publicKey
}

// PrivateKey returns the ed25519.PrivateKey.
func (k *KeyPair) PrivateKey() stdcrypto.PrivateKey {
	return k.privateKey
}

// Type reports the key algorithm.
func (k *KeyPair) Type() crypto.KeyType {
	return crypto.KeyTypeEd25519
}

// Sign produces a detached Ed25519 signature. Ed25519 is deterministic, so the
// same message always yields the same signature.
func (k *KeyPair) Sign(message []byte) ([]byte, error) {
	if len(k.privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("corrupt private key: %d bytes", len(k.privateKey))
	}
	return ed25519.Sign(k.privateKey, message), nil
}

// Verify checks a detached signature against the public key.
func (k *KeyPair) Verify(message, signature []byte) error {
	if !ed25519.Verify(k.publicKey, message, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Ed25519PublicKey returns the typed public key.
func (k *KeyPair) Ed25519PublicKey() ed25519.PublicKey {
	return k.publicKey
}

// PublicKeyBase64 returns the raw public key in standard base64.
func (k *KeyPair) PublicKeyBase64() string {
	return base64.StdEncoding.EncodeToString(k.publicKey)
}

// String redacts the private key.
func (k *KeyPair) String() string {
	return fmt.Sprintf("ed25519 keypair %s (private key redacted)", k.id)
}

// GoString redacts the private key for %#v.
func (k *KeyPair) GoString() string {
	return k.String()
}
