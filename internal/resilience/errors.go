// Package resilience provides the error taxonomy and bounded-retry combinator
// used around the pipeline's external calls.
package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// NetworkError wraps a fetch failure: non-success status, timeout, or an
// empty page. Fatal to that URL's run but never to the batch.
type NetworkError struct {
	Err        error
	StatusCode int
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps an error as a network failure with an optional HTTP
// status code.
func NewNetworkError(err error, statusCode int) *NetworkError {
	return &NetworkError{Err: err, StatusCode: statusCode}
}

// OverloadError marks a transient capacity error from the extraction
// capability. It is the only error class the extractor retries.
type OverloadError struct {
	Err        error
	StatusCode int
}

func (e *OverloadError) Error() string {
	return e.Err.Error()
}

func (e *OverloadError) Unwrap() error {
	return e.Err
}

// NewOverloadError wraps an error as a retryable overload.
func NewOverloadError(err error, statusCode int) *OverloadError {
	return &OverloadError{Err: err, StatusCode: statusCode}
}

// IsNetwork reports whether err (or anything in its chain) is a NetworkError
// or matches common transport-level failure patterns.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}

	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	networkPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	}
	for _, p := range networkPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsOverload reports whether err (or anything in its chain) is an
// OverloadError.
func IsOverload(err error) bool {
	var oe *OverloadError
	return errors.As(err, &oe)
}

// IsOverloadHTTPStatus reports whether an HTTP status code indicates the
// extraction capability is at capacity.
func IsOverloadHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 429, // Too Many Requests
		529: // Overloaded (Anthropic)
		return true
	default:
		return false
	}
}
