package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	transient := errors.New("transient")
	fatal := errors.New("fatal")

	tests := []struct {
		name          string
		policy        Policy
		failures      int
		failWith      error
		expectedError error
		expectedCalls int
	}{
		{
			name:          "first attempt succeeds",
			policy:        Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Retryable: func(err error) bool { return errors.Is(err, transient) }},
			expectedCalls: 1,
		},
		{
			name:          "retries transient failure",
			policy:        Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Retryable: func(err error) bool { return errors.Is(err, transient) }},
			failures:      2,
			failWith:      transient,
			expectedCalls: 3,
		},
		{
			name:          "gives up after max attempts",
			policy:        Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, Retryable: func(err error) bool { return true }},
			failures:      5,
			failWith:      transient,
			expectedError: transient,
			expectedCalls: 2,
		},
		{
			name:          "non-retryable error stops immediately",
			policy:        Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Retryable: func(err error) bool { return errors.Is(err, transient) }},
			failures:      5,
			failWith:      fatal,
			expectedError: fatal,
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), tt.policy, func(ctx context.Context, attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedCalls, calls)
		})
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := Policy{MaxAttempts: 3, BaseDelay: time.Second, Retryable: func(err error) bool { return true }}
	calls := 0
	err := Do(ctx, policy, func(ctx context.Context, attempt int) error {
		calls++
		return errors.New("transient")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
