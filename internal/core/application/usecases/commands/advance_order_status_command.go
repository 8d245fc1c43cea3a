package commands

import (
	"errors"
	"strings"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves an order to the status right after its current one.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	description string
	actor       string

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(orderID kernel.UUID, description, actor string) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), validateActor(actor)); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return AdvanceOrderStatusCommand{
		orderID:     orderID,
		description: strings.TrimSpace(description),
		actor:       strings.TrimSpace(actor),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Description may be empty; the new status' default description is used then.
func (c AdvanceOrderStatusCommand) Description() string {
	return c.description
}

func (c AdvanceOrderStatusCommand) Actor() string {
	return c.actor
}
