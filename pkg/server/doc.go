// Package server provides HTTP middleware that authenticates signed Miropay
// requests.
//
// # Basic Usage
//
//	resolver := verifier.NewStaticKeyResolver()
//	_ = resolver.Register("merchant-1", merchantPublicKey)
//
//	middleware := server.NewSignatureAuthMiddleware(resolver)
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    identifier, ok := server.IdentifierFromContext(r.Context())
//	    if !ok {
//	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
//	        return
//	    }
//	    fmt.Fprintf(w, "Authenticated as: %s", identifier)
//	})
//
//	http.Handle("/v1/", middleware.Wrap(handler))
//
// # Signed Path
//
// Clients sign "/v1/<path>". By default the middleware verifies against the
// escaped request path plus the raw query, which matches when handlers are
// mounted under /v1.
// Use SetPathMapper when a proxy rewrites the path:
//
//	middleware.SetPathMapper(func(r *http.Request) string {
//	    return "/v1" + strings.TrimPrefix(r.URL.EscapedPath(), "/api")
//	})
//
// # Optional Verification
//
//	// Allow requests without x-id and x-signature to pass through
//	middleware.SetOptional(true)
//
// Requests that carry headers are still verified and rejected on failure.
//
// # Custom Error Handler
//
//	middleware.SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
//	    log.Printf("Authentication failed: %v", err)
//	    http.Error(w, "Custom error message", http.StatusForbidden)
//	})
//
// The default handler answers 401 with a JSON body of the form
// {"statusCode": 401, "message": "Unauthorized: ..."}.
//
// # How It Works
//
// For each request the middleware:
//
//  1. Skips verification for OPTIONS requests (CORS preflight)
//  2. Reads the x-id and x-signature headers
//  3. Resolves the merchant public key through the KeyResolver
//  4. Verifies the Ed25519 signature over the canonical string
//  5. Stores the verified identifier in the request context
//
// The request body is not part of the signature and is left untouched.
package server
