package sdk

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrMalformedResponse is returned when a successful response does not
	// carry the expected fields
	ErrMalformedResponse = errors.New("malformed processor response")
)

// ValidationError lists the fields that are missing or invalid. No request
// is sent when it is returned.
type ValidationError struct {
	Operation string
	Fields    []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s request: missing or invalid fields: %s", e.Operation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// APIError is a non-2xx processor response
type APIError struct {
	StatusCode int
	Message    string
	Payload    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("processor returned %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the processor answered 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newAPIError extracts a message from the common error payload shapes:
// {"message": "..."}, {"message": ["...", "..."]} and {"error": "..."}.
func newAPIError(statusCode int, payload map[string]any) *APIError {
	message := ""
	switch m := payload["message"].(type) {
	case string:
		message = m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		message = strings.Join(parts, "; ")
	}
	if message == "" {
		if s, ok := payload["error"].(string); ok {
			message = s
		}
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return &APIError{StatusCode: statusCode, Message: message, Payload: payload}
}
