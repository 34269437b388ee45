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

package transport

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/client"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/signer"
	"github.com/sage-x-project/sage/pkg/agent/crypto"
)

// ErrOutsideBaseURL is returned for requests that do not target the base URL.
// Such requests are never sent.
var ErrOutsideBaseURL = errors.New("request is outside the base URL")

// SigningTransport is an http.RoundTripper that adds the x-id and
// x-signature headers to every request under its base URL.
type SigningTransport struct {
	base       http.RoundTripper
	baseURL    *url.URL
	basePath   string
	identifier string
	keyPair    crypto.KeyPair
	signer     signer.RequestSigner
}

// NewSigningTransport creates a signing transport.
//
// Parameters:
//   - baseURL: The processor base URL (e.g., "https://api.pallawan.com/v1")
//   - identifier: The merchant identifier sent as x-id
//   - keyPair: The merchant key pair
//   - base: The transport doing the actual work (nil for http.DefaultTransport)
func NewSigningTransport(baseURL, identifier string, keyPair crypto.KeyPair, base http.RoundTripper) (*SigningTransport, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if identifier == "" {
		return nil, signer.ErrEmptyIdentifier
	}
	if keyPair == nil {
		return nil, signer.ErrNilKeyPair
	}
	if base == nil {
		base = http.DefaultTransport
	}

	return &SigningTransport{
		base:       base,
		baseURL:    u,
		basePath:   u.EscapedPath() + "/",
		identifier: identifier,
		keyPair:    keyPair,
		signer:     signer.NewDefaultRequestSigner(),
	}, nil
}

// RoundTrip signs a copy of req and hands it to the base transport
func (t *SigningTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	path, err := t.relativePath(req.URL)
	if err != nil {
		closeBody(req)
		return nil, err
	}

	signed := req.Clone(req.Context())
	if signed.Header.Get("content-type") == "" {
		signed.Header.Set("content-type", client.DefaultContentType)
	}

	if err := t.signer.SignRequest(req.Context(), signed, signer.VersionedPath(path), t.identifier, t.keyPair); err != nil {
		closeBody(req)
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	return t.base.RoundTrip(signed)
}

// relativePath returns the path and query of u below the base URL, without a
// leading slash
func (t *SigningTransport) relativePath(u *url.URL) (string, error) {
	if !strings.EqualFold(u.Scheme, t.baseURL.Scheme) || !strings.EqualFold(u.Host, t.baseURL.Host) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBaseURL, u.Redacted())
	}

	path, ok := strings.CutPrefix(u.EscapedPath(), t.basePath)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrOutsideBaseURL, u.Redacted())
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path, nil
}

// NewHTTPClient returns an http.Client that signs every request with the
// merchant credentials. Redirects leaving the base URL fail with
// ErrOutsideBaseURL.
func NewHTTPClient(baseURL, identifier string, keyPair crypto.KeyPair, timeout time.Duration) (*http.Client, error) {
	t, err := NewSigningTransport(baseURL, identifier, keyPair, nil)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: t, Timeout: timeout}, nil
}

// closeBody honours the RoundTripper contract of closing the body on error
func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
