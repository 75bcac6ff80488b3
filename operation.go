// Package apiretry wraps fallible API calls with policy-driven retries.
// Transient upstream failures (rate limits, quota exhaustion, server errors)
// are recognised from the error message, waits grow exponentially up to a
// configurable cap, and server-advertised "retry in" hints override the
// computed wait for a single attempt.
package apiretry

import (
	"context"
)

// Operation is a fallible unit of work executed under retry control.
// Type parameter T can be any result type, making this suitable for HTTP
// calls, LLM completions, database queries, or any other call that fails
// transiently.
//
// Example:
//
//	summary, err := apiretry.Do(ctx, func(ctx context.Context) (string, error) {
//	    return client.Summarize(ctx, text)
//	})
type Operation[T any] func(ctx context.Context) (T, error)
