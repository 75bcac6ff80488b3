package apiretry

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Executor runs operations with configurable retry logic.
// Retryable failures back off exponentially up to MaxDelay; when the error
// message carries a "retry in <seconds>" hint, the hint replaces the computed
// wait for that attempt. An Executor holds no per-invocation state, so a
// single instance is safe for concurrent use.
type Executor[T any] struct {
	config     *Config
	logger     *slog.Logger
	classifier ErrorClassifier
}

// NewExecutor creates an executor for operations returning T.
// It applies the provided options over the defaults and normalises
// out-of-range values.
//
// Example:
//
//	exec := apiretry.NewExecutor[string](
//	    apiretry.WithMaxRetries(5),
//	    apiretry.WithExponentialBackoff(time.Second, time.Minute),
//	)
func NewExecutor[T any](opts ...Option) *Executor[T] {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	if config.Classifier == nil {
		config.Classifier = DefaultErrorClassifier()
	}

	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}

	if config.InitialDelay <= 0 {
		config.InitialDelay = time.Second
	}

	if config.MaxDelay <= 0 {
		config.MaxDelay = 60 * time.Second
	}

	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}

	return &Executor[T]{
		config:     config,
		logger:     config.Logger,
		classifier: config.Classifier,
	}
}

// Do runs op under a single-use executor built from opts.
//
// Example:
//
//	resp, err := apiretry.Do(ctx, fetchUser, apiretry.WithMaxRetries(3))
func Do[T any](ctx context.Context, op Operation[T], opts ...Option) (T, error) {
	return NewExecutor[T](opts...).Execute(ctx, op)
}

// Execute runs op with retry logic.
// The result of the first successful attempt is returned as-is. Errors the
// classifier rejects propagate unchanged without any wait. Retryable errors
// are retried up to MaxRetries times; once the budget runs out the last
// error is wrapped in a *RetriesExhaustedError.
func (e *Executor[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	var zero T

	// Check if the parent context is done before attempting any calls
	select {
	case <-ctx.Done():
		e.logger.Warn("context already done before first attempt (expected condition)",
			"error", ctx.Err())
		return zero, ctx.Err()
	default:
	}

	backoff := e.newBackoff()

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				e.logger.Info("operation succeeded after retry",
					"attempts", attempt+1)
			}
			return result, nil
		}

		if !e.classifier.IsRetryable(err) {
			e.logger.Debug("non-retryable error, giving up",
				"error", err,
				"attempt", attempt+1)
			return zero, err
		}

		if attempt == e.config.MaxRetries {
			e.logger.Warn("operation failed after retries",
				"attempts", attempt+1,
				"error", err)
			return zero, &RetriesExhaustedError{
				MaxRetries: e.config.MaxRetries,
				Err:        err,
			}
		}

		wait := e.nextWait(backoff, err)

		e.logger.Info("retrying operation after delay",
			"attempt", attempt+1,
			"max_attempts", e.config.MaxRetries+1,
			"delay", wait,
			"error", truncateMessage(err.Error()))

		if werr := e.wait(ctx, wait); werr != nil {
			e.logger.Warn("context done during backoff wait (expected condition)",
				"attempt", attempt+1,
				"error", werr)
			return zero, werr
		}
	}

	// Unreachable: every loop iteration returns or sleeps and continues.
	return zero, errNoOutcome
}

// nextWait advances the backoff schedule and applies any server hint.
// The schedule advances on every retryable failure so a hint never stalls
// the exponential growth; hint or schedule, the wait never exceeds MaxDelay.
func (e *Executor[T]) nextWait(backoff retry.Backoff, err error) time.Duration {
	wait, _ := backoff.Next()

	if hint, ok := ParseRetryHint(err.Error()); ok {
		wait = hint
		if wait > e.config.MaxDelay {
			wait = e.config.MaxDelay
		}
	}

	return wait
}

// wait sleeps for d or until ctx is done, whichever comes first.
func (e *Executor[T]) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newBackoff builds the delay schedule for one Execute invocation.
// Schedule state lives in the returned value, never on the Executor, so
// concurrent invocations cannot interfere with each other.
func (e *Executor[T]) newBackoff() retry.Backoff {
	return retry.WithCappedDuration(e.config.MaxDelay, e.newConfigurableExponential())
}

// newConfigurableExponential creates an exponential backoff using the
// configured multiplier. Unlike retry.NewExponential which always doubles,
// this allows configurable growth rates: the delay for attempt N is
// initialDelay * (multiplier ^ N).
func (e *Executor[T]) newConfigurableExponential() retry.Backoff {
	multiplier := e.config.Multiplier

	// For multiplier of exactly 2.0, use the optimized library implementation
	if multiplier == 2.0 {
		return retry.NewExponential(e.config.InitialDelay)
	}

	attempt := uint64(0)
	return retry.BackoffFunc(func() (time.Duration, bool) {
		delay := float64(e.config.InitialDelay)
		for i := uint64(0); i < attempt; i++ {
			delay *= multiplier
			// Prevent overflow
			if delay > float64(1<<63-1) {
				attempt++
				return time.Duration(1<<63 - 1), false
			}
		}
		attempt++
		return time.Duration(delay), false
	})
}

// maxLoggedErrorLen bounds error messages in retry notices so verbose
// upstream payloads do not flood the log.
const maxLoggedErrorLen = 100

func truncateMessage(msg string) string {
	if len(msg) <= maxLoggedErrorLen {
		return msg
	}
	return msg[:maxLoggedErrorLen] + "..."
}
