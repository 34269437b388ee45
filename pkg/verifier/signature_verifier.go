package verifier

import (
	"context"
	"net/http"
)

// SignatureVerifier verifies Miropay request signatures
type SignatureVerifier interface {
	// VerifyRequest checks the x-id and x-signature headers of req against
	// versionedPath and returns the verified identifier
	VerifyRequest(ctx context.Context, req *http.Request, versionedPath string) (string, error)

	// Verify checks a base64 signature over the canonical string
	Verify(ctx context.Context, method, versionedPath, identifier, signature string) error
}
