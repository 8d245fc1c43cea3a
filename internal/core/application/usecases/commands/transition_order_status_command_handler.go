package commands

import (
	"context"
	"time"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
)

// beginTxError marks a failure to open a transaction. The bulk applier treats it
// as systemic instead of charging it to a single order.
type beginTxError struct {
	err error
}

func (e *beginTxError) Error() string {
	return "begin transaction: " + e.err.Error()
}

func (e *beginTxError) Unwrap() error {
	return e.err
}

// transitionOrder locks the order row, lets apply change the status and writes the
// new status and its history entry in the same transaction.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	apply func(o *order.Order) (order.HistoryEntry, error),
) (order.HistoryEntry, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.HistoryEntry{}, &beginTxError{err: err}
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	entry, err := apply(o)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.HistoryEntry{}, err
	}

	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return order.HistoryEntry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.HistoryEntry{}, err
	}

	return entry, nil
}

// TransitionOrderStatusCommandHandler applies an explicit status change to one order.
//
// Errors:
//   - errs.ErrObjectNotFound when the order does not exist
//   - order.ErrInvalidTransition for backward moves without correction and same-status moves
//   - order.ErrAlreadyTerminal for forward moves out of DELIVERED
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle returns the history entry that was committed with the new status.
func (h *TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (order.HistoryEntry, error) {
	if err := cmd.Validate(); err != nil {
		return order.HistoryEntry{}, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (order.HistoryEntry, error) {
		return o.Transition(cmd.Request(), cmd.Actor(), h.now())
	})
}
