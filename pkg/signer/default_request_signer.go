package signer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	miropay "github.com/MirotechTeam/miropay-woocommerce-sdk"
	"github.com/sage-x-project/sage/pkg/agent/crypto"
)

// canonicalSeparator is part of the wire format, spaces included.
const canonicalSeparator = " || "

var (
	ErrNilKeyPair      = errors.New("key pair cannot be nil")
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")
	ErrEmptyMethod     = errors.New("method cannot be empty")
)

// CanonicalString builds the exact string the processor verifies:
//
//	"<METHOD> || <identifier> || <versionedPath>"
func CanonicalString(method, identifier, versionedPath string) string {
	return strings.ToUpper(method) + canonicalSeparator + identifier + canonicalSeparator + versionedPath
}

// VersionedPath returns the signed form of an API path, "/v1/<path>".
func VersionedPath(path string) string {
	return "/" + miropay.APIVersion + "/" + path
}

// DefaultRequestSigner implements RequestSigner with detached signatures from the key pair
type DefaultRequestSigner struct{}

// NewDefaultRequestSigner creates a new DefaultRequestSigner
func NewDefaultRequestSigner() *DefaultRequestSigner {
	return &DefaultRequestSigner{}
}

// Sign computes the signature for one request. The result only depends on the
// inputs, so resending an identical request may reuse it.
func (s *DefaultRequestSigner) Sign(ctx context.Context, method, versionedPath, identifier string, keyPair crypto.KeyPair) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	if keyPair == nil {
		return "", ErrNilKeyPair
	}

	if identifier == "" {
		return "", ErrEmptyIdentifier
	}

	if method == "" {
		return "", ErrEmptyMethod
	}

	signature, err := keyPair.Sign([]byte(CanonicalString(method, identifier, versionedPath)))
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}

// SignRequest signs req with its own method and sets the identity headers
func (s *DefaultRequestSigner) SignRequest(ctx context.Context, req *http.Request, versionedPath, identifier string, keyPair crypto.KeyPair) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}

	signature, err := s.Sign(ctx, req.Method, versionedPath, identifier, keyPair)
	if err != nil {
		return err
	}

	req.Header.Set(HeaderID, identifier)
	req.Header.Set(HeaderSignature, signature)

	return nil
}
