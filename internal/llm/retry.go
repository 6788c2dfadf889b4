package llm

import (
	"context"
	"math"
	"time"
)

// RetryConfig holds retry behavior for model calls.
type RetryConfig struct {
	// MaxRetries is the number of re-attempts after the initial call.
	MaxRetries int

	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration

	// Multiplier is the factor applied to the delay on each retry.
	Multiplier float64

	// MaxDelay caps the backoff duration.
	MaxDelay time.Duration
}

// DefaultRetryConfig returns sensible retry defaults for model calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		Multiplier:   2.0,
		MaxDelay:     30 * time.Second,
	}
}

// Delay calculates the exponential backoff duration for a given attempt,
// counted from zero.
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := time.Duration(float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		return c.MaxDelay
	}
	return delay
}

// RetryObserver is notified before each backoff sleep. It receives the
// zero-based attempt that just failed, the retries remaining after it, and
// the error that triggered the retry. Observers must not alter control flow.
type RetryObserver func(attempt int, remaining int, err error)

// Classifier reports whether an error is transient and worth retrying.
type Classifier func(err error) bool

// Retry invokes op, re-invoking it on transient failure with exponential
// backoff until it succeeds or MaxRetries re-attempts are exhausted. The
// last error is returned unchanged once attempts run out. Non-transient
// errors fail immediately without retrying. The backoff sleep respects
// context cancellation so one run's waiting never blocks another.
func Retry[T any](ctx context.Context, cfg RetryConfig, classify Classifier, observe RetryObserver, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !classify(err) {
			return zero, err
		}

		if attempt == cfg.MaxRetries {
			break
		}

		if observe != nil {
			observe(attempt, cfg.MaxRetries-attempt, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(cfg.Delay(attempt)):
		}
	}

	return zero, lastErr
}
