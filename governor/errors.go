package governor

import (
	"errors"
	"fmt"
)

// ErrAdmissionTimeout indicates no rate-limit permit became available within
// the admission timeout. It is a backpressure signal, not a provider
// failure; callers typically skip the item and continue.
var ErrAdmissionTimeout = errors.New("admission timed out waiting for rate limit capacity")

// ErrNotConfigured indicates the global governor facade was used before
// ConfigureGlobal.
var ErrNotConfigured = errors.New("global governor not configured")

// RetryExhaustedError reports that every allowed attempt failed with a
// retryable provider error.
type RetryExhaustedError struct {
	// Attempts is the total number of invocation attempts made.
	Attempts int

	// Err is the error from the final attempt.
	Err error
}

// Error implements the error interface.
func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the final attempt's error for errors.Is/As support.
func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}
