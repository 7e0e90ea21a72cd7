// Package ai provides common types shared by the AI collaborator ports
// (NLU, ASR, TTS, responder). It defines the error classification the
// dialogue core uses to decide between retrying a provider and degrading
// to its deterministic fallback behavior.
package ai

import "errors"

var (
	// ErrRecoverable indicates a temporary provider failure that may succeed
	// if retried. Examples: network timeout, rate limiting, service overload.
	ErrRecoverable = errors.New("recoverable provider error")

	// ErrFatal indicates a permanent provider failure that will not succeed
	// if retried. Examples: invalid API key, unsupported audio format.
	ErrFatal = errors.New("fatal provider error")

	// ErrUnavailable indicates the provider is not configured at all (for
	// example, no API key). Callers degrade to their local fallback.
	ErrUnavailable = errors.New("provider unavailable")
)

// IsRecoverable reports whether err should be retried.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrRecoverable)
}

// IsFatal reports whether err is permanent and should not be retried.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// ProviderError wraps an underlying provider error with retry classification.
type ProviderError struct {
	Underlying error
	Retryable  bool
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Underlying.Error()
}

func (e *ProviderError) Unwrap() error {
	if e.Retryable {
		return ErrRecoverable
	}
	return ErrFatal
}

// NewRecoverableError wraps underlying as a retryable provider error.
func NewRecoverableError(underlying error, message string) error {
	return &ProviderError{Underlying: underlying, Retryable: true, Message: message}
}

// NewFatalError wraps underlying as a permanent provider error.
func NewFatalError(underlying error, message string) error {
	return &ProviderError{Underlying: underlying, Retryable: false, Message: message}
}
