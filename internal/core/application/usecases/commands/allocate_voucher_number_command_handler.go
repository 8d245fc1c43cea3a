package commands

import (
	"context"

	"go.uber.org/zap"

	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/logger"
)

// AllocateVoucherNumberCommandHandler reserves voucher numbers.
//
// Each attempt is one short transaction around the counter increment. The store
// serializes callers of the same key, so every successful call gets a distinct value
// greater than any value returned before it. Conflicts are retried per RetryPolicy;
// anything else, and running out of attempts, yields voucher.SequenceAllocationFailedError.
//
// Example:
//
//	cmd, _ := NewAllocateVoucherNumberCommand("01", "001", "001")
//	alloc, err := handler.Handle(ctx, cmd)
//	// alloc.Number == "01-001-001-000000001" on a fresh counter
type AllocateVoucherNumberCommandHandler struct {
	uowFactory SequenceUoWFactory
	policy     RetryPolicy
	logger     *zap.Logger
}

func NewAllocateVoucherNumberCommandHandler(
	uowFactory SequenceUoWFactory,
	policy RetryPolicy,
	log *zap.Logger,
) AllocateVoucherNumberCommandHandler {
	return AllocateVoucherNumberCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.Component(log, "voucher-sequencer"),
	}
}

func (h *AllocateVoucherNumberCommandHandler) Handle(
	ctx context.Context,
	cmd AllocateVoucherNumberCommand,
) (voucher.Allocation, error) {
	if err := cmd.Validate(); err != nil {
		return voucher.Allocation{}, err
	}
	key := cmd.Key()
	log := h.logger.With(zap.String("key", key.String()))

	var allocation voucher.Allocation
	attempts, err := retryOnConflict(ctx, h.policy, log, func(ctx context.Context) error {
		var attemptErr error
		allocation, attemptErr = h.allocateOnce(ctx, key)
		return attemptErr
	})
	if err != nil {
		log.Error("voucher number allocation failed", zap.Int("attempts", attempts), zap.Error(err))
		return voucher.Allocation{}, voucher.NewSequenceAllocationFailedError(key, attempts, err)
	}

	log.Debug("voucher number allocated", zap.String("number", allocation.Number), zap.Int("attempts", attempts))
	return allocation, nil
}

func (h *AllocateVoucherNumberCommandHandler) allocateOnce(ctx context.Context, key voucher.Key) (voucher.Allocation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return voucher.Allocation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	seq, err := uow.VoucherSequenceRepository().Next(ctx, key)
	if err != nil {
		return voucher.Allocation{}, err
	}

	allocation, err := voucher.NewAllocation(key, seq)
	if err != nil {
		return voucher.Allocation{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return voucher.Allocation{}, err
	}

	return allocation, nil
}
