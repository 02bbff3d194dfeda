package pusher

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidArgument indicates the caller broke a precondition before any request was sent
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAuthentication indicates Pusher rejected the signature or timestamp (HTTP 401)
	ErrAuthentication = errors.New("authentication failed")
	// ErrForbidden indicates Pusher refused the operation for this application (HTTP 403)
	ErrForbidden = errors.New("forbidden")
	// ErrRemote indicates any other non-success status
	ErrRemote = errors.New("remote error")
)

// APIError represents a non-2xx answer from the Pusher REST API.
// Body holds the raw response body, unmodified.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("pusher API error: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code onto one of ErrAuthentication, ErrForbidden or ErrRemote
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return ErrRemote
	}
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden checks if the error indicates a policy refusal
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// TransportError wraps a failure of the underlying transport (connection refused, TLS, timeout).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pusher transport error: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a success status carries a body that is not valid JSON.
type MalformedResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pusher malformed response: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("pusher malformed response: status %d: body is not valid JSON", e.StatusCode)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
