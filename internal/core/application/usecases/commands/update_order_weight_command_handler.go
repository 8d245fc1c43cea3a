package commands

import (
	"context"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/errs"
)

// UpdateOrderWeightCommandHandler stores a new weight and the total priced for it.
// Pricing runs before the order row is locked; the locked row must still belong to
// the customer the total was priced for.
type UpdateOrderWeightCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    OrderTotalCalculator
}

func NewUpdateOrderWeightCommandHandler(
	uowFactory OrderUoWFactory,
	pricing OrderTotalCalculator,
) UpdateOrderWeightCommandHandler {
	return UpdateOrderWeightCommandHandler{uowFactory: uowFactory, pricing: pricing}
}

func (h *UpdateOrderWeightCommandHandler) Handle(ctx context.Context, cmd UpdateOrderWeightCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	var pricedFor *kernel.UUID
	if cmd.ManualTotal() == nil {
		current, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return nil, err
		}
		pricedFor = current.CustomerID()
	}
	total := resolveTotal(ctx, h.pricing, cmd.ManualTotal(), pricedFor, cmd.WeightLbs())

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if cmd.ManualTotal() == nil && !sameCustomer(pricedFor, o.CustomerID()) {
		return nil, errs.NewConcurrencyConflictError("order")
	}

	if err = o.ChangeWeight(cmd.WeightLbs(), total); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func sameCustomer(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IsEqual(*b)
}
