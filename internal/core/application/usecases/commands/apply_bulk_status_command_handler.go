package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/logger"
)

const DefaultMaxBatchSize = 500

// BulkItemSuccess is one order that reached the target status.
type BulkItemSuccess struct {
	OrderID kernel.UUID
	Entry   order.HistoryEntry
}

// ApplyBulkStatusResult reports the outcome per order. Every submitted id that was
// processed appears exactly once, either in Succeeded or in Failed.
type ApplyBulkStatusResult struct {
	Succeeded []BulkItemSuccess
	Failed    map[kernel.UUID]error

	failedOrder []kernel.UUID
}

func newApplyBulkStatusResult(size int) ApplyBulkStatusResult {
	return ApplyBulkStatusResult{
		Succeeded: make([]BulkItemSuccess, 0, size),
		Failed:    make(map[kernel.UUID]error),
	}
}

func (r *ApplyBulkStatusResult) fail(id kernel.UUID, err error) {
	r.Failed[id] = err
	r.failedOrder = append(r.failedOrder, id)
}

// FailedIDs lists failed orders in submission order.
func (r ApplyBulkStatusResult) FailedIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(r.failedOrder))
	copy(out, r.failedOrder)
	return out
}

// RedriveCandidates lists failed orders worth submitting again. Orders that were
// already terminal or already in the target status are left out: re-driving them
// cannot succeed and callers treat them as done.
func (r ApplyBulkStatusResult) RedriveCandidates() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(r.failedOrder))
	for _, id := range r.failedOrder {
		err := r.Failed[id]
		if errors.Is(err, order.ErrAlreadyTerminal) {
			continue
		}
		var sameStatus *order.InvalidTransitionError
		if errors.As(err, &sameStatus) && sameStatus.From == sameStatus.To {
			continue
		}
		out = append(out, id)
	}
	return out
}

// ApplyBulkStatusCommandHandler applies a status change to many orders, each in its
// own transaction, so that one bad order never blocks the rest.
//
// Only systemic failures stop the batch: a transaction that cannot be opened, or
// a cancelled/expired context. The partial result is returned with the error then.
//
// Example:
//
//	cmd, _ := NewApplyBulkStatusCommand(ids, order.Dispatched, "truck 12", "operator", false)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // systemic: result holds what was applied before the failure
//	}
//	for id, itemErr := range result.Failed {
//	    ...
//	}
type ApplyBulkStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	maxBatchSize int
	logger       *zap.Logger
	now          func() time.Time
}

func NewApplyBulkStatusCommandHandler(
	uowFactory OrderUoWFactory,
	maxBatchSize int,
	log *zap.Logger,
) ApplyBulkStatusCommandHandler {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return ApplyBulkStatusCommandHandler{
		uowFactory:   uowFactory,
		maxBatchSize: maxBatchSize,
		logger:       logger.Component(log, "bulk-status"),
		now:          time.Now,
	}
}

func (h *ApplyBulkStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyBulkStatusCommand,
) (ApplyBulkStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyBulkStatusResult{}, err
	}

	ids := cmd.OrderIDs()
	if len(ids) > h.maxBatchSize {
		return ApplyBulkStatusResult{}, errs.NewValueIsOutOfRangeError("batch size", len(ids), 1, h.maxBatchSize)
	}

	req := cmd.Request()
	result := newApplyBulkStatusResult(len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			h.logSummary(req, result, err)
			return result, err
		}

		entry, err := transitionOrder(ctx, h.uowFactory, id, func(o *order.Order) (order.HistoryEntry, error) {
			return o.Transition(req, cmd.Actor(), h.now())
		})
		if err == nil {
			result.Succeeded = append(result.Succeeded, BulkItemSuccess{OrderID: id, Entry: entry})
			continue
		}

		if systemic := systemicError(ctx, err); systemic != nil {
			h.logger.Error("bulk status change aborted",
				zap.String("orderId", id.String()),
				zap.Error(systemic))
			h.logSummary(req, result, systemic)
			return result, systemic
		}

		h.logger.Warn("order skipped in bulk status change",
			zap.String("orderId", id.String()),
			zap.String("target", req.Target().String()),
			zap.Error(err))
		result.fail(id, err)
	}

	h.logSummary(req, result, nil)
	return result, nil
}

// systemicError returns non-nil when err means the whole batch must stop.
func systemicError(ctx context.Context, err error) error {
	var beginErr *beginTxError
	if errors.As(err, &beginErr) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(ctxErr, err)
	}
	return nil
}

func (h *ApplyBulkStatusCommandHandler) logSummary(req order.TransitionRequest, result ApplyBulkStatusResult, err error) {
	fields := []zap.Field{
		zap.String("target", req.Target().String()),
		zap.String("kind", req.Kind().String()),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	}
	if err != nil {
		h.logger.Warn("bulk status change stopped", append(fields, zap.Error(err))...)
		return
	}
	h.logger.Info("bulk status change finished", fields...)
}
