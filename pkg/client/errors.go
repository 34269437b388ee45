package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// TransportError reports that no HTTP response was received: connection
// refused, DNS failure, timeout or a broken body read. It is never retried
// by the client.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request timed out or hit its deadline
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// Temporary reports whether the failure may go away on its own. Callers
// decide whether to retry.
func (e *TransportError) Temporary() bool {
	return e.Timeout() ||
		errors.Is(e.Err, syscall.ECONNREFUSED) ||
		errors.Is(e.Err, syscall.ECONNRESET)
}
