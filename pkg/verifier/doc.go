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


// Package verifier checks Miropay request signatures on the receiving side.
//
// A signed request carries the merchant identifier in x-id and a base64
// Ed25519 signature in x-signature. The verifier resolves the merchant's
// public key from the identifier, rebuilds the canonical string
//
//	<METHOD> || <identifier> || /v1/<path>
//
// and checks the signature over it.
//
// # Key Resolution
//
// Public keys come from a KeyResolver. StaticKeyResolver keeps them in
// memory and is enough for tests and the sandbox:
//
//	resolver := verifier.NewStaticKeyResolver()
//	if err := resolver.Register("merchant-1", publicKey); err != nil {
//	    log.Fatal(err)
//	}
//
//	v := verifier.NewDefaultVerifier(resolver)
//
// # Verifying Requests
//
//	identifier, err := v.VerifyRequest(ctx, req, req.URL.EscapedPath())
//	if err != nil {
//	    http.Error(w, "unauthorized", http.StatusUnauthorized)
//	    return
//	}
//
// The versioned path is passed in explicitly because the path the client
// signed ("/v1/...") does not have to match the path the server sees, for
// example behind a reverse proxy that strips a prefix.
//
// # Errors
//
//   - Missing x-id or x-signature: ErrMissingHeaders
//   - No key registered for the identifier: ErrUnknownIdentifier
//   - x-signature is not valid base64 or has the wrong size: ErrMalformedSignature
//   - Signature does not match: ErrSignatureMismatch
//
// All errors wrap one of the sentinels above and can be tested with errors.Is.
package verifier
