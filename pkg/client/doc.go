// Package client provides an HTTP client that signs every Miropay API call.
//
// The client wraps a pooled http.Client and attaches the merchant identity
// to each request: an x-id header with the merchant identifier and an
// x-signature header with an Ed25519 signature over the canonical string
// built by the signer package.
//
// # Features
//
//   - Automatic request signing for GET, POST and PATCH
//   - JSON request bodies and lenient JSON response decoding
//   - Explicit timeout (30s by default) and context cancellation
//   - Optional zap logging and prometheus request metrics
//   - Custom HTTP client injection
//
// # Basic Usage
//
//	c, err := client.NewClientFromPEM(client.Config{
//	    BaseURL:    "https://api.pallawan.com/v1",
//	    Identifier: merchantID,
//	}, privateKeyPEM)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := c.Get(ctx, "payment/rest/live/status/42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.StatusCode(), result.Payload()["status"])
//
// # URLs and Signatures
//
// Paths are relative to the base URL. The request above goes to
//
//	https://api.pallawan.com/v1/payment/rest/live/status/42
//
// and the signature covers
//
//	GET || <merchantID> || /v1/payment/rest/live/status/42
//
// The signed path always starts with "/v1/" regardless of the base URL.
//
// # Request Bodies
//
// POST and PATCH bodies are encoded with encoding/json. A nil body is sent as
// "[]". Other methods never carry a body.
//
// # Redirects
//
// Redirects that keep the method are followed with the original headers. A
// redirect that would change the method (a 301, 302 or 303 after POST or
// PATCH) is not followed; the 3xx response is returned as the Result.
//
// # Results
//
// Any HTTP response is returned as a *Result, including 4xx and 5xx. The
// caller decides what a status means:
//
//	result, err := c.Post(ctx, "payment/rest/live/create", req)
//	if err != nil {
//	    return err
//	}
//	if !result.IsSuccess() {
//	    log.Printf("processor returned %d: %v", result.StatusCode(), result.Payload())
//	}
//
// Empty bodies and bodies that are not a JSON object yield an empty payload.
// Use Result.Decode to unmarshal the raw body into a typed value.
//
// # Error Handling
//
// Network failures are returned as *TransportError and are never retried:
//
//	var transportErr *client.TransportError
//	if errors.As(err, &transportErr) && transportErr.Timeout() {
//	    log.Println("processor timed out")
//	}
//
// Body encoding and signing failures are returned as plain wrapped errors.
// They indicate a programming or key problem, not a network one.
//
// # Thread Safety
//
// Client is immutable after construction and safe for concurrent use by
// multiple goroutines.
package client
