package commands

import (
	"errors"
	"strings"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

var ErrApplyBulkStatusCommandIsNotConstructed = errors.New(
	"ApplyBulkStatusCommand must be created via NewApplyBulkStatusCommand constructor",
)

// ApplyBulkStatusCommand applies one status change to many orders.
// Duplicate ids are dropped, keeping the first occurrence.
type ApplyBulkStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	request  order.TransitionRequest
	actor    string

	guard guard.ConstructorGuard
}

func NewApplyBulkStatusCommand(
	orderIDs []kernel.UUID,
	target order.Status,
	description string,
	actor string,
	correction bool,
) (ApplyBulkStatusCommand, error) {
	req, reqErr := buildTransitionRequest(target, description, correction)

	ids, idsErr := dedupeOrderIDs(orderIDs)

	if err := errors.Join(idsErr, reqErr, validateActor(actor)); err != nil {
		return ApplyBulkStatusCommand{}, err
	}

	return ApplyBulkStatusCommand{
		orderIDs: ids,
		request:  req,
		actor:    strings.TrimSpace(actor),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyBulkStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyBulkStatusCommandIsNotConstructed)
}

// OrderIDs returns the deduplicated ids in submission order.
func (c ApplyBulkStatusCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}

func (c ApplyBulkStatusCommand) Request() order.TransitionRequest {
	return c.request
}

func (c ApplyBulkStatusCommand) Actor() string {
	return c.actor
}

func dedupeOrderIDs(orderIDs []kernel.UUID) ([]kernel.UUID, error) {
	if len(orderIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("order ids")
	}
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	out := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
