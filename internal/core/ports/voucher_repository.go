package ports

import (
	"context"

	"courierdesk/internal/core/domain/model/voucher"
)

// VoucherSequenceRepository owns the per-key counters.
type VoucherSequenceRepository interface {
	// Next increments the counter of key and returns the new value, creating the
	// counter on first use. Callers for the same key are serialized by the store;
	// different keys do not wait for each other. A conflict that the caller may
	// retry yields errs.ConcurrencyConflictError.
	Next(ctx context.Context, key voucher.Key) (int64, error)

	// Current returns the counter of key, 0 when it was never used.
	Current(ctx context.Context, key voucher.Key) (int64, error)
}

// VoucherRepository stores issued vouchers.
type VoucherRepository interface {
	Add(ctx context.Context, v *voucher.Voucher) error
}
