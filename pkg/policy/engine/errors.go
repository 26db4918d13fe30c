package engine

import (
	"fmt"
)

// ReloadError indicates a ruleset reload failed; the previously active
// ruleset keeps serving decisions.
type ReloadError struct {
	Source string
	Cause  error
}

// Error returns the error message.
func (e *ReloadError) Error() string {
	return fmt.Sprintf("ruleset reload failed for %q: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ReloadError) Unwrap() error {
	return e.Cause
}
