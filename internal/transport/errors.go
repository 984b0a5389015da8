package transport

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded into
// the expected shape. No partial result is returned alongside it.
var ErrMalformedResponse = errors.New("malformed response body")

// StatusError is returned for any non-2xx response. The raw body is kept so
// callers can decode the provider's error envelope.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shipengine %s: unexpected status %d: %s", e.Operation, e.StatusCode, truncate(e.Body, 512))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
