package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand registers a customer. Name and rate are validated by the aggregate.
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	name       string
	pricePerLb *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(
	customerID kernel.UUID,
	name string,
	pricePerLb *decimal.Decimal,
) (CreateCustomerCommand, error) {
	if err := customerID.Validate(); err != nil {
		return CreateCustomerCommand{}, err
	}
	return CreateCustomerCommand{
		customerID: customerID,
		name:       name,
		pricePerLb: kernel.OptionalDecimal(pricePerLb),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateCustomerCommand) Name() string {
	return c.name
}

func (c CreateCustomerCommand) PricePerLb() *decimal.Decimal {
	return kernel.OptionalDecimal(c.pricePerLb)
}
