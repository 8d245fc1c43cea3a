package commands

import (
	"errors"
	"strings"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand moves one order to a target status.
// With correction set the move is an administrative correction and description is its mandatory reason.
//
// Example:
//
//	cmd, err := NewTransitionOrderStatusCommand(orderID, order.InCustoms, "held for inspection", "operator", false)
//	entry, err := handler.Handle(ctx, cmd)
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	request order.TransitionRequest
	actor   string

	guard guard.ConstructorGuard
}

func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	description string,
	actor string,
	correction bool,
) (TransitionOrderStatusCommand, error) {
	req, reqErr := buildTransitionRequest(target, description, correction)

	cmd := TransitionOrderStatusCommand{
		orderID: orderID,
		request: req,
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), reqErr, validateActor(actor)); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderStatusCommand) Request() order.TransitionRequest {
	return c.request
}

func (c TransitionOrderStatusCommand) Actor() string {
	return c.actor
}

func buildTransitionRequest(target order.Status, description string, correction bool) (order.TransitionRequest, error) {
	if correction {
		return order.AdministrativeCorrection(target, description)
	}
	return order.Forward(target, description)
}

func validateActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return ErrActorIsRequired
	}
	return nil
}
