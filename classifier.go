package apiretry

import (
	"strings"
)

// ErrorClassifier determines whether an error should trigger a retry.
// Implement this interface to customize retry behavior for your specific
// error types.
type ErrorClassifier interface {
	// IsRetryable returns true if the error represents a transient failure
	// that should be retried.
	IsRetryable(err error) bool
}

// ClassifierFunc adapts an ordinary function to the ErrorClassifier
// interface.
//
// Example:
//
//	classifier := apiretry.ClassifierFunc(func(err error) bool {
//	    return errors.Is(err, io.ErrUnexpectedEOF)
//	})
type ClassifierFunc func(err error) bool

// IsRetryable implements ErrorClassifier.
func (f ClassifierFunc) IsRetryable(err error) bool {
	return f(err)
}

// MessageClassifier classifies errors by scanning their message for
// substrings that mark transient upstream conditions. Matching is
// case-insensitive, so "Rate Limit" and "RATE LIMIT" both count. An error
// with an empty message is never retryable.
//
// This matches how rate-limited HTTP APIs report failures: the status code
// and throttling vocabulary appear in the message text even when the client
// library exposes no structured status field.
type MessageClassifier struct {
	// Patterns lists the substrings that mark an error as transient.
	// Defaults to "429", "quota", "rate limit", "500", "503" if nil.
	Patterns []string
}

// NewMessageClassifier creates a MessageClassifier with the default pattern
// set: 429 (rate limit), quota, rate limit, 500, 503 (server errors).
func NewMessageClassifier() *MessageClassifier {
	return &MessageClassifier{
		Patterns: []string{"429", "quota", "rate limit", "500", "503"},
	}
}

// IsRetryable implements ErrorClassifier for message-based classification.
// Any single pattern match marks the error retryable; patterns carry no
// priority among themselves.
func (c *MessageClassifier) IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	if msg == "" {
		return false
	}

	for _, pattern := range c.getPatterns() {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}

	return false
}

// getPatterns returns the configured patterns or defaults.
func (c *MessageClassifier) getPatterns() []string {
	if c.Patterns != nil {
		return c.Patterns
	}
	return []string{"429", "quota", "rate limit", "500", "503"}
}

// DefaultErrorClassifier provides reasonable defaults for most use cases.
// It treats rate limits (429), quota exhaustion, and server errors (500,
// 503) reported in the error message as retryable; everything else,
// including context cancellation, propagates immediately.
func DefaultErrorClassifier() ErrorClassifier {
	return NewMessageClassifier()
}
