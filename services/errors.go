// ABOUTME: Typed error taxonomy for upstream API failures
// ABOUTME: Network, upstream, precondition, and malformed-response errors

package services

import "fmt"

// NetworkError is a transport-level failure with no HTTP response.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx HTTP response or an envelope-level failure.
// It carries the server's message so callers can surface it as-is.
type UpstreamError struct {
	Backend    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Backend, e.StatusCode)
}

// PreconditionError indicates an operation was attempted before its
// prerequisites were met. Never retried; the caller must fix the sequence.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// ErrNotAuthenticated is returned when an authenticated operation is called
// before OTP verification completes. No network call is attempted.
var ErrNotAuthenticated = &PreconditionError{Reason: "not authenticated, complete the OTP login first"}

// MalformedResponseError is a response body that could not be parsed as JSON,
// including after any backend-specific repair attempt.
type MalformedResponseError struct {
	Backend string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned malformed JSON: %v", e.Backend, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
