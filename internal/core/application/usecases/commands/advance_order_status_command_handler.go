package commands

import (
	"context"
	"time"

	"courierdesk/internal/core/domain/model/order"
)

// AdvanceOrderStatusCommandHandler moves an order one step forward.
// A DELIVERED order yields order.ErrAlreadyTerminal.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h *AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
) (order.HistoryEntry, error) {
	if err := cmd.Validate(); err != nil {
		return order.HistoryEntry{}, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (order.HistoryEntry, error) {
		return o.Advance(cmd.Description(), cmd.Actor(), h.now())
	})
}
