package apiretry

import (
	"errors"
	"fmt"
)

// RetriesExhaustedError reports that an operation kept failing with
// transient errors until the retry budget ran out. It wraps the final
// attempt's error.
type RetriesExhaustedError struct {
	// MaxRetries is the configured retry budget that was exhausted.
	MaxRetries int

	// Err is the error returned by the final attempt.
	Err error
}

// Error implements the error interface.
func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("max retries (%d) exceeded, last error: %v", e.MaxRetries, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// IsRetriesExhausted reports whether err (or any error it wraps) marks a
// retry budget that ran out.
//
// Example:
//
//	if apiretry.IsRetriesExhausted(err) {
//	    metrics.Inc("upstream_gave_up")
//	}
func IsRetriesExhausted(err error) bool {
	var exhausted *RetriesExhaustedError
	return errors.As(err, &exhausted)
}

// errNoOutcome guards the exit left over when the attempt loop ends without
// either a result or a classified failure. No execution path reaches it.
var errNoOutcome = errors.New("retry loop ended without an outcome")
