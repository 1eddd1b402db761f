package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUpstreamUnavailable is returned while the circuit breaker rejects calls.
var ErrUpstreamUnavailable = errors.New("upstream temporarily unavailable")

// NetworkError reports a transport-level failure: DNS, connection, timeout.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-2xx answer from the photo source.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying later may succeed.
func (e *UpstreamError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsClientError reports whether err is an upstream 4xx other than 429,
// i.e. a problem with the request rather than with the source.
func IsClientError(err error) bool {
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	return ue.StatusCode >= 400 && !ue.Temporary()
}
