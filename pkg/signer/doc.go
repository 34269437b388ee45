// Package signer provides request signing for the Miropay processor API.
//
// Every API call carries two identity headers:
//
//	x-id:        <merchant identifier>
//	x-signature: base64(Ed25519(canonical string))
//
// # Canonical String
//
// The signature covers a fixed-format string built from the HTTP method, the
// merchant identifier and the versioned path:
//
//	GET || abc123 || /v1/payment/rest/live/status/42
//
// The separator is a literal " || " with a space on each side. The processor
// rebuilds the same string byte for byte, so any change here breaks
// authentication.
//
// # Versioned Path
//
// The signed path is always "/v1/<path>", whatever base URL the client sends
// the request to. A client configured with base URL
// "https://api.example.com/v1" requests
// "https://api.example.com/v1/payment/rest/live/status/42" and signs
// "/v1/payment/rest/live/status/42". Use VersionedPath to build it.
//
// # Signing Requests
//
//	signer := signer.NewDefaultRequestSigner()
//	req, _ := http.NewRequest("GET", baseURL+"/"+path, nil)
//
//	err := signer.SignRequest(ctx, req, signer.VersionedPath(path), merchantID, keyPair)
//	if err != nil {
//	    return err
//	}
//
// Ed25519 is deterministic: the same key, method, identifier and path always
// produce the same signature. There is no timestamp or nonce in the canonical
// string.
//
// # Error Handling
//
// Signing never falls back to an unsigned request. The errors are:
//
//   - Nil key pair: ErrNilKeyPair
//   - Empty identifier: ErrEmptyIdentifier
//   - Empty method: ErrEmptyMethod
//   - Signing failed: the key pair returned an error
//   - Context canceled: operation interrupted
package signer
