package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/guard"
)

var ErrUpdateOrderWeightCommandIsNotConstructed = errors.New(
	"UpdateOrderWeightCommand must be created via NewUpdateOrderWeightCommand constructor",
)

// UpdateOrderWeightCommand records the weight measured at the facility.
// The order is re-priced unless manualTotal is given.
type UpdateOrderWeightCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	weightLbs   *decimal.Decimal
	manualTotal *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewUpdateOrderWeightCommand(
	orderID kernel.UUID,
	weightLbs *decimal.Decimal,
	manualTotal *decimal.Decimal,
) (UpdateOrderWeightCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		validateWeight(weightLbs),
		validateManualTotal(manualTotal),
	); err != nil {
		return UpdateOrderWeightCommand{}, err
	}

	return UpdateOrderWeightCommand{
		orderID:     orderID,
		weightLbs:   kernel.OptionalDecimal(weightLbs),
		manualTotal: kernel.OptionalDecimal(manualTotal),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderWeightCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderWeightCommandIsNotConstructed)
}

func (c UpdateOrderWeightCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderWeightCommand) WeightLbs() *decimal.Decimal {
	return kernel.OptionalDecimal(c.weightLbs)
}

func (c UpdateOrderWeightCommand) ManualTotal() *decimal.Decimal {
	return kernel.OptionalDecimal(c.manualTotal)
}
