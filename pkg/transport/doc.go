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

// Package transport signs requests at the http.RoundTripper level.
//
// It is an alternative to pkg/client for code that already builds its own
// *http.Request values, or that hands an *http.Client to another library.
// Every request whose URL lies below the base URL gets the same x-id and
// x-signature headers the client would send; the signed path is the part of
// the URL after the base URL, query included, prefixed with /v1/.
//
// # Usage
//
//	httpClient, err := transport.NewHTTPClient(
//	    "https://api.pallawan.com/v1",
//	    merchantID,
//	    keyPair,
//	    30*time.Second,
//	)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := httpClient.Get("https://api.pallawan.com/v1/payment/rest/live/status/42")
//
// # Wrapping Another Transport
//
//	t, err := transport.NewSigningTransport(baseURL, merchantID, keyPair, myTransport)
//	httpClient := &http.Client{Transport: t}
//
// # Requests Outside the Base URL
//
// A request for another host, scheme or path prefix is rejected with
// ErrOutsideBaseURL before anything is sent, so credentials never leak to
// a redirect target.
package transport
