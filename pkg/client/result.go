package client

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Result is a processor response: the HTTP status and the raw JSON body. A
// Result is never modified after it is returned.
type Result struct {
	statusCode int
	body       []byte
}

func newResult(statusCode int, body []byte) *Result {
	return &Result{
		statusCode: statusCode,
		body:       body,
	}
}

// decodePayload decodes body leniently. Empty bodies, invalid JSON and JSON
// values that are not objects all produce an empty map.
func decodePayload(body []byte) map[string]any {
	if len(body) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err == nil && decoded != nil {
			return decoded
		}
	}
	return map[string]any{}
}

// StatusCode returns the HTTP status code
func (r *Result) StatusCode() int {
	return r.statusCode
}

// Payload decodes the body into a fresh map on every call, so callers may
// modify it, nested values included.
func (r *Result) Payload() map[string]any {
	return decodePayload(r.body)
}

// Body returns a copy of the raw response body
func (r *Result) Body() []byte {
	return append([]byte(nil), r.body...)
}

// IsSuccess reports whether the status code is 2xx
func (r *Result) IsSuccess() bool {
	return r.statusCode >= http.StatusOK && r.statusCode < http.StatusMultipleChoices
}

// Decode unmarshals the raw body into v
func (r *Result) Decode(v any) error {
	if len(r.body) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.body, v)
}
