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
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"regexp"
	"strings"
)

// SeedSize is the size of the Ed25519 seed carried at the end of the DER body.
const SeedSize = ed25519.SeedSize

// pemArmour matches the BEGIN/END lines of any "... PRIVATE KEY" block and all
// whitespace, so only the base64 body survives.
var pemArmour = regexp.MustCompile(`-----[^-]*PRIVATE KEY-----|\s+`)

// DeriveFromPEM derives the signing keypair from a PEM-armoured private key.
// Literal "\n" sequences, as produced by single-line environment variables,
// are treated as line breaks.
func DeriveFromPEM(privateKeyPEM string) (*KeyPair, error) {
	der, err := decodePEMBody(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	seed, err := extractSeed(der)
	if err != nil {
		return nil, err
	}

	return NewKeyPairFromSeed(seed)
}

// NewKeyPairFromSeed expands a 32-byte seed into a keypair.
func NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, &KeyDerivationError{
			Reason: fmt.Sprintf("seed must be %d bytes, got %d", SeedSize, len(seed)),
		}
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	return newKeyPair(privateKey), nil
}

// GenerateKeyPair creates a random keypair and returns it together with its
// PKCS#8 PEM encoding, in the same format merchants receive from the processor.
func GenerateKeyPair() (*KeyPair, string, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	encoded, err := EncodePKCS8PEM(privateKey.Seed())
	if err != nil {
		return nil, "", err
	}

	return newKeyPair(privateKey), encoded, nil
}

// EncodePKCS8PEM encodes a raw seed as a "PRIVATE KEY" PEM block. The result
// round-trips through DeriveFromPEM.
func EncodePKCS8PEM(seed []byte) (string, error) {
	if len(seed) != SeedSize {
		return "", &KeyDerivationError{
			Reason: fmt.Sprintf("seed must be %d bytes, got %d", SeedSize, len(seed)),
		}
	}

	der, err := x509.MarshalPKCS8PrivateKey(ed25519.NewKeyFromSeed(seed))
	if err != nil {
		return "", fmt.Errorf("failed to marshal pkcs8 key: %w", err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})), nil
}

// decodePEMBody strips the armour and whitespace and base64-decodes the rest.
func decodePEMBody(privateKeyPEM string) ([]byte, error) {
	normalized := strings.ReplaceAll(privateKeyPEM, `\n`, "\n")
	body := pemArmour.ReplaceAllString(normalized, "")
	if body == "" {
		return nil, &KeyDerivationError{Reason: "private key is empty"}
	}

	der, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		// Some exports drop the trailing padding.
		var rawErr error
		der, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "="))
		if rawErr != nil {
			return nil, &KeyDerivationError{Reason: "private key body is not valid base64", Err: err}
		}
	}

	return der, nil
}

// extractSeed returns the trailing SeedSize bytes of an Ed25519 PKCS#8 body.
// Shorter inputs are rejected rather than silently truncated.
func extractSeed(der []byte) ([]byte, error) {
	if len(der) < SeedSize {
		return nil, &KeyDerivationError{
			Reason: fmt.Sprintf("decoded key is %d bytes, need at least %d", len(der), SeedSize),
		}
	}

	seed := make([]byte, SeedSize)
	copy(seed, der[len(der)-SeedSize:])
	return seed, nil
}
