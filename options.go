package apiretry

import (
	"log/slog"
	"time"
)

// Config holds retry configuration options.
type Config struct {
	// Classifier determines which errors should trigger retries.
	// Default: MessageClassifier with the standard transient patterns
	Classifier ErrorClassifier

	// Logger for retry operations.
	// Default: slog.Default()
	Logger *slog.Logger

	// InitialDelay is the wait before the first retry.
	// Default: 1 second
	InitialDelay time.Duration

	// MaxDelay caps every wait, whether computed by the backoff schedule
	// or taken from a server hint.
	// Default: 60 seconds
	MaxDelay time.Duration

	// Multiplier is the backoff growth factor.
	// The delay for retry N is initialDelay * (multiplier ^ N).
	// Default: 2.0 (doubling)
	// Common values: 1.5 (moderate growth), 2.0 (doubling), 3.0 (aggressive growth)
	Multiplier float64

	// MaxRetries is the number of retries after the initial attempt, so an
	// operation runs at most MaxRetries+1 times. Zero disables retries;
	// negative values are treated as zero.
	// Default: 5
	MaxRetries int
}

// Option is a functional option for configuring retry behavior.
type Option func(*Config)

// WithMaxRetries sets the number of retries after the initial attempt.
// The total number of calls will be at most retries+1.
//
// Example:
//
//	apiretry.WithMaxRetries(3) // Initial attempt plus up to 3 retries
func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithExponentialBackoff configures the wait schedule.
// Each retry wait is multiplied by the configured multiplier (default 2.0)
// up to maxDelay.
//
// Example:
//
//	apiretry.WithExponentialBackoff(time.Second, 30*time.Second)
//	// With default multiplier 2.0: 1s, 2s, 4s, 8s, 16s, 30s (capped)
func WithExponentialBackoff(initialDelay, maxDelay time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = initialDelay
		c.MaxDelay = maxDelay
	}
}

// WithMultiplier sets the backoff growth factor.
//
// Example:
//
//	apiretry.WithMultiplier(1.5) // 50% growth per retry
//	// With InitialDelay=1s: 1s, 1.5s, 2.25s, 3.375s, ...
func WithMultiplier(multiplier float64) Option {
	return func(c *Config) {
		c.Multiplier = multiplier
	}
}

// WithErrorClassifier sets a custom error classifier for retry decisions.
//
// Example:
//
//	classifier := &MyCustomClassifier{}
//	apiretry.WithErrorClassifier(classifier)
func WithErrorClassifier(classifier ErrorClassifier) Option {
	return func(c *Config) {
		c.Classifier = classifier
	}
}

// WithLogger sets a custom logger for retry operations.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	apiretry.WithLogger(logger)
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns retry configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:   5,
		InitialDelay: time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		Classifier:   DefaultErrorClassifier(),
		Logger:       slog.Default(),
	}
}
