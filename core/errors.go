package core

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Authentication errors. ErrAuthRejected is the one error kind the
	// session store interprets: it is always fatal to the session.
	ErrAuthRejected     = errors.New("authentication rejected")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Network errors. Connectivity and timeout are distinct kinds so the
	// UI can present them differently; neither mutates session or cart.
	ErrConnectionFailed = errors.New("connection failed")
	ErrTimeout          = errors.New("request timed out")

	// ErrRateLimited (429) is observed and logged only; it never changes
	// session or cart state.
	ErrRateLimited = errors.New("rate limited")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing required configuration")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ErrorKind categorizes errors for the propagation policy: stores interpret
// only KindAuth; everything else passes through to the caller untouched.
type ErrorKind string

const (
	ErrorKindAuth         ErrorKind = "auth"
	ErrorKindConnectivity ErrorKind = "connectivity"
	ErrorKindTimeout      ErrorKind = "timeout"
	ErrorKindRateLimit    ErrorKind = "rate_limit"
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindStorage      ErrorKind = "storage"
	ErrorKindConfig       ErrorKind = "config"
	ErrorKindInternal     ErrorKind = "internal"
)

// ClientError provides structured error information with context.
// It implements the error interface and supports error wrapping.
type ClientError struct {
	Op      string    // Operation that failed (e.g., "session.Bootstrap")
	Kind    ErrorKind // Category of error
	Status  int       // HTTP status when the error came from the API
	Message string    // Human-readable message, verbatim from the server when available
	Err     error     // Underlying error for wrapping
}

// Error returns the string representation of the error
func (e *ClientError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the underlying error for use with errors.Is/As
func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target
func (e *ClientError) Is(target error) bool {
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// NewClientError creates a new ClientError
func NewClientError(op string, kind ErrorKind, err error) *ClientError {
	return &ClientError{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// IsAuthRejected reports whether err means the credential was rejected
// (401/403). This is the only error class that forces a logout.
func IsAuthRejected(err error) bool {
	if errors.Is(err, ErrAuthRejected) {
		return true
	}
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind == ErrorKindAuth
	}
	return false
}

// IsRateLimited reports whether err is a 429 from the API.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsRetryable checks if an error is retryable.
// Retryable errors are transient network or availability issues; a rejected
// credential is never retryable.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConnectionFailed) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited)
}

// IsConfigurationError checks if an error is configuration-related
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrMissingConfiguration)
}

// UserMessage extracts a stable, user-presentable message from err.
// Server-provided messages pass through verbatim; network failures map to
// fixed phrasings so the UI never shows a raw dial error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrTimeout):
		return "The request timed out. Please try again."
	case errors.Is(err, ErrConnectionFailed):
		return "Could not reach the server. Check your connection."
	case errors.Is(err, ErrRateLimited):
		return "Too many requests. Please slow down."
	case errors.Is(err, ErrAuthRejected):
		return "Session expired. Please login again."
	}
	var ce *ClientError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return "An unexpected error occurred"
}
