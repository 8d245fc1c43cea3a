package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/errs"
)

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 5, Backoff: 100 * time.Millisecond}

	for attempt, base := range map[int]time.Duration{
		1: 100 * time.Millisecond,
		2: 200 * time.Millisecond,
		3: 400 * time.Millisecond,
	} {
		d := p.delay(attempt)
		assert.GreaterOrEqual(t, d, base*8/10, "attempt %d", attempt)
		assert.LessOrEqual(t, d, base*12/10, "attempt %d", attempt)
	}

	assert.LessOrEqual(t, p.delay(40), maxRetryBackoff*12/10)
	assert.Zero(t, RetryPolicy{Backoff: 0}.delay(3))
}

func TestRetryPolicy_Normalized(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 0, Backoff: -time.Second}.normalized()
	assert.Equal(t, 1, p.MaxAttempts)
	assert.Zero(t, p.Backoff)

	assert.Equal(t, DefaultMaxAttempts, DefaultRetryPolicy().MaxAttempts)
}

func TestRetryOnConflict(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}

	t.Run("should retry conflicts until success", func(t *testing.T) {
		calls := 0
		attempts, err := retryOnConflict(t.Context(), policy, zap.NewNop(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errs.NewConcurrencyConflictError("voucher_sequence")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("should stop on anything but a conflict", func(t *testing.T) {
		boom := errors.New("connection reset")
		attempts, err := retryOnConflict(t.Context(), policy, zap.NewNop(), func(context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, attempts)
	})

	t.Run("should give up after the last attempt", func(t *testing.T) {
		attempts, err := retryOnConflict(t.Context(), policy, zap.NewNop(), func(context.Context) error {
			return errs.NewConcurrencyConflictError("voucher_sequence")
		})

		assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		assert.Equal(t, 3, attempts)
	})

	t.Run("should stop waiting when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		slow := RetryPolicy{MaxAttempts: 3, Backoff: time.Minute}
		attempts, err := retryOnConflict(ctx, slow, zap.NewNop(), func(context.Context) error {
			cancel()
			return errs.NewConcurrencyConflictError("voucher_sequence")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		assert.Equal(t, 1, attempts)
	})
}

func TestAsAllocationFailure(t *testing.T) {
	key, err := voucher.NewKey("01", "001", "001")
	require.NoError(t, err)

	failed := voucher.NewSequenceAllocationFailedError(key, 1, errors.New("store down"))
	wrapped := asAllocationFailure(failed, 4)

	var got *voucher.SequenceAllocationFailedError
	require.ErrorAs(t, wrapped, &got)
	assert.Equal(t, 4, got.Attempts)

	plain := errors.New("other")
	assert.Same(t, plain, asAllocationFailure(plain, 4))
}
