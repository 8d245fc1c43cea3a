package commands

import (
	"context"
	"time"

	"courierdesk/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers a new order in PRE_ALERT together with its
// first history entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectAlreadyExists) {
//	    // guide already registered
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    OrderTotalCalculator
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, pricing OrderTotalCalculator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		now:        time.Now,
	}
}

// Handle prices the order (unless a manual total was given), then inserts the order
// and its intake history entry in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	total := resolveTotal(ctx, h.pricing, cmd.ManualTotal(), cmd.CustomerID(), cmd.WeightLbs())

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Guide(),
		cmd.CustomerID(),
		cmd.Facility(),
		cmd.WeightLbs(),
		total,
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	intake, err := o.IntakeEntry(cmd.Actor())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = orderRepo.AppendHistory(ctx, intake); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
