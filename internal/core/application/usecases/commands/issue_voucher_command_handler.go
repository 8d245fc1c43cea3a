package commands

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/logger"
)

// IssueVoucherCommandHandler reserves a number and stores the voucher in one
// transaction, so a number is only consumed when its voucher exists.
//
// Lookup and validation problems (unknown order, missing settings) are returned as they are.
// Failures of the numbering step are reported as voucher.SequenceAllocationFailedError
// after the conflict retries are used up.
type IssueVoucherCommandHandler struct {
	uowFactory VoucherUoWFactory
	policy     RetryPolicy
	logger     *zap.Logger
	now        func() time.Time
}

func NewIssueVoucherCommandHandler(
	uowFactory VoucherUoWFactory,
	policy RetryPolicy,
	log *zap.Logger,
) IssueVoucherCommandHandler {
	return IssueVoucherCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.Component(log, "voucher-issuer"),
		now:        time.Now,
	}
}

func (h *IssueVoucherCommandHandler) Handle(ctx context.Context, cmd IssueVoucherCommand) (*voucher.Voucher, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	log := h.logger.With(zap.String("voucherId", cmd.VoucherID().String()))

	var issued *voucher.Voucher
	attempts, err := retryOnConflict(ctx, h.policy, log, func(ctx context.Context) error {
		var attemptErr error
		issued, attemptErr = h.issueOnce(ctx, cmd)
		return attemptErr
	})
	if err != nil {
		err = asAllocationFailure(err, attempts)
		log.Error("voucher issue failed", zap.Int("attempts", attempts), zap.Error(err))
		return nil, err
	}

	log.Info("voucher issued",
		zap.String("number", issued.Number()),
		zap.String("amount", issued.Amount().StringFixed(2)))
	return issued, nil
}

func (h *IssueVoucherCommandHandler) issueOnce(ctx context.Context, cmd IssueVoucherCommand) (*voucher.Voucher, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	snapshot, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	key, err := voucher.KeyFor(cmd.DocumentType(), snapshot.EstablishmentCode(), snapshot.EmissionPointCode())
	if err != nil {
		return nil, err
	}

	amount, err := h.resolveAmount(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	// From here on every failure belongs to the numbering step.
	seq, err := uow.VoucherSequenceRepository().Next(ctx, key)
	if err != nil {
		return nil, voucher.NewSequenceAllocationFailedError(key, 0, err)
	}

	allocation, err := voucher.NewAllocation(key, seq)
	if err != nil {
		return nil, voucher.NewSequenceAllocationFailedError(key, 0, err)
	}

	v, err := voucher.NewVoucher(cmd.VoucherID(), allocation, cmd.OrderID(), amount, h.now(), cmd.Actor())
	if err != nil {
		return nil, err
	}

	if err = uow.VoucherRepository().Add(ctx, v); err != nil {
		return nil, voucher.NewSequenceAllocationFailedError(key, 0, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, voucher.NewSequenceAllocationFailedError(key, 0, err)
	}

	return v, nil
}

func (h *IssueVoucherCommandHandler) resolveAmount(
	ctx context.Context,
	uow VoucherUoW,
	cmd IssueVoucherCommand,
) (decimal.Decimal, error) {
	if amount := cmd.Amount(); amount != nil {
		return *amount, nil
	}
	o, err := uow.OrderRepository().Get(ctx, *cmd.OrderID())
	if err != nil {
		return decimal.Zero, err
	}
	return o.Total(), nil
}
