package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrThrottled indicates the provider rejected the call for rate reasons.
	ErrThrottled = errors.New("provider throttled the request")

	// ErrUnavailable indicates a transient provider-side failure.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrModelTimeout indicates the model timed out processing the request.
	ErrModelTimeout = errors.New("model invocation timed out")

	// ErrAccessDenied indicates missing or rejected credentials.
	ErrAccessDenied = errors.New("access denied")

	// ErrModelNotFound indicates the model ID is unknown or not enabled.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidRequest indicates the request is malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyResponse indicates the call succeeded but produced no usable text.
	ErrEmptyResponse = errors.New("provider returned no text")
)

// Error wraps provider errors with classification context.
type Error struct {
	Provider  string // Provider name ("bedrock", etc.)
	Op        string // Operation that failed ("invoke")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error, retryable bool) *Error {
	return &Error{
		Provider:  provider,
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable checks if an error is likely transient and worth retrying
// against the provider.
func IsRetryable(err error) bool {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}

	// Check for known retryable sentinel errors
	return errors.Is(err, ErrThrottled) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrModelTimeout)
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
