package signer

import (
	"context"
	"net/http"

	"github.com/sage-x-project/sage/pkg/agent/crypto"
)

const (
	// HeaderID carries the merchant identifier
	HeaderID = "x-id"

	// HeaderSignature carries the base64 detached signature
	HeaderSignature = "x-signature"
)

// RequestSigner signs Miropay API requests with the merchant key
type RequestSigner interface {
	// Sign returns the base64 signature over the canonical string for
	// method, identifier and versionedPath
	Sign(ctx context.Context, method, versionedPath, identifier string, keyPair crypto.KeyPair) (string, error)

	// SignRequest signs req and sets the x-id and x-signature headers.
	// versionedPath is signed as given; it does not have to match req.URL.
	SignRequest(ctx context.Context, req *http.Request, versionedPath, identifier string, keyPair crypto.KeyPair) error
}
