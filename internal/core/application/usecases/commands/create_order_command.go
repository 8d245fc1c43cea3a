package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrActorIsRequired = errs.NewValueIsRequiredError("actor")
)

// CreateOrderCommand represents a package taken in at a facility.
// The total is priced automatically unless manualTotal is given.
//
// Example:
//
//	weight := decimal.RequireFromString("2.5")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "EC-1001", &customerID, kernel.FacilityDefault,
//	    &weight, nil, "operator@agency")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	guide       string
	customerID  *kernel.UUID
	facility    kernel.Facility
	weightLbs   *decimal.Decimal
	manualTotal *decimal.Decimal
	actor       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the intake data. customerID, weightLbs and manualTotal are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	guide string,
	customerID *kernel.UUID,
	facility kernel.Facility,
	weightLbs *decimal.Decimal,
	manualTotal *decimal.Decimal,
	actor string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guide:       strings.TrimSpace(guide),
		facility:    facility,
		weightLbs:   kernel.OptionalDecimal(weightLbs),
		manualTotal: kernel.OptionalDecimal(manualTotal),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setActor(actor),
		facility.Validate(),
		validateGuide(cmd.guide),
		validateWeight(weightLbs),
		validateManualTotal(manualTotal),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Guide() string {
	return c.guide
}

func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Facility() kernel.Facility {
	return c.facility
}

func (c CreateOrderCommand) WeightLbs() *decimal.Decimal {
	return kernel.OptionalDecimal(c.weightLbs)
}

// ManualTotal is the operator supplied total; nil means "price it".
func (c CreateOrderCommand) ManualTotal() *decimal.Decimal {
	return kernel.OptionalDecimal(c.manualTotal)
}

func (c CreateOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	id := *customerID
	c.customerID = &id
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}

func validateGuide(guide string) error {
	if guide == "" {
		return errs.NewValueIsRequiredError("guide")
	}
	return nil
}

func validateWeight(weightLbs *decimal.Decimal) error {
	if weightLbs != nil && weightLbs.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is negative", weightLbs.String()))
	}
	return nil
}

func validateManualTotal(total *decimal.Decimal) error {
	if total != nil && total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("manual total", fmt.Errorf("%s is negative", total.String()))
	}
	return nil
}
