// Package retry provides the shared retry policy applied to adapter calls.
package retry

import (
	"context"
	"time"
)

// Policy controls how many times an operation is attempted and how long to
// back off between attempts
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable decides whether an error is worth another attempt.
	// A nil predicate retries every error.
	Retryable func(error) bool
}

// Do runs fn until it succeeds, the policy is exhausted, or the context is
// cancelled. The attempt number passed to fn starts at 1.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := sleep(ctx, p.delay(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func (p Policy) delay(attempt int) time.Duration {
	delay := p.BaseDelay
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	delay *= time.Duration(1 << (attempt - 1))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
