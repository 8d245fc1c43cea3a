package commands

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/errs"
)

const (
	DefaultMaxAttempts  = 5
	DefaultRetryBackoff = 50 * time.Millisecond
	maxRetryBackoff     = 2 * time.Second
)

// RetryPolicy bounds how often a conflicting transaction is attempted again.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Backoff: DefaultRetryBackoff}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Backoff < 0 {
		p.Backoff = 0
	}
	return p
}

// delay is the pause before attempt+1: base doubled per attempt, capped, with ±20% jitter.
func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Backoff == 0 {
		return 0
	}
	d := p.Backoff
	for i := 1; i < attempt && d < maxRetryBackoff; i++ {
		d *= 2
	}
	d = min(d, maxRetryBackoff)
	jitter := time.Duration((rand.Float64()*0.4 - 0.2) * float64(d))
	return d + jitter
}

// retryOnConflict runs fn until it succeeds, fails with anything other than a
// concurrency conflict, or the attempts run out. It returns the number of attempts
// made and the last error.
func retryOnConflict(
	ctx context.Context,
	policy RetryPolicy,
	logger *zap.Logger,
	fn func(ctx context.Context) error,
) (int, error) {
	policy = policy.normalized()

	var err error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return attempt, nil
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return attempt, err
		}
		if attempt == policy.MaxAttempts {
			return attempt, err
		}

		wait := policy.delay(attempt)
		logger.Warn("concurrency conflict, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", policy.MaxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return policy.MaxAttempts, err
}

// asAllocationFailure stamps the final attempt count on a SequenceAllocationFailedError
// raised inside a retried closure.
func asAllocationFailure(err error, attempts int) error {
	var failed *voucher.SequenceAllocationFailedError
	if errors.As(err, &failed) {
		failed.Attempts = attempts
	}
	return err
}
