package api

import (
	"context"
	"time"
)

// RetryPolicy retries an operation with exponential backoff. Errors the
// classifier marks non-retryable are rethrown immediately without consuming
// further attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns the policy used for network dispatch.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    8 * time.Second,
	}
}

// Delay returns the backoff before the attempt after attemptIndex:
// baseDelay * 2^attemptIndex, clamped to maxDelay.
func (p RetryPolicy) Delay(attemptIndex int) time.Duration {
	delay := p.BaseDelay
	for i := 0; i < attemptIndex; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}

	if delay > p.MaxDelay {
		return p.MaxDelay
	}

	return delay
}

// retry runs op under policy p. The operation result is generic so the same
// policy wraps network dispatch and other fallible lookups.
func retry[T any](ctx context.Context, p RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(p.Delay(attempt - 1)):
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		// A canceled caller should see cancellation, not the failure the
		// abort produced.
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if !IsRetryable(err) {
			return zero, err
		}

		lastErr = err
	}

	return zero, lastErr
}
