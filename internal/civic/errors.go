package civic

import (
	"errors"
	"fmt"
)

// Sentinel errors distinguishing the two failure kinds a lookup can surface.
var (
	// ErrInvalidAddress means the upstream rejected the supplied address;
	// the caller can correct it and retry.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrServiceUnavailable means the upstream failed for reasons unrelated
	// to the address; transient.
	ErrServiceUnavailable = errors.New("civic service unavailable")
)

// LookupError wraps an upstream failure with its HTTP status and message.
// Use errors.Is with ErrInvalidAddress or ErrServiceUnavailable to branch.
type LookupError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("civic lookup failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("civic lookup failed: %s", e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
