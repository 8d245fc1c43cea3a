package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

// guidePattern is the tracking number ("guide") accepted at intake.
var guidePattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,40}$`)

// Order is the shipment aggregate. It owns the status and the priced total of one
// package and produces the HistoryEntry for every status change it accepts.
//
// Order follows these invariants:
//   - Must have a valid identifier and a guide matching [A-Za-z0-9-]{1,40}
//   - Starts in PreAlert
//   - Forward moves only go to later statuses; anything else needs an administrative correction
//   - Weight, when present, and total are never negative; total is kept at 2 decimal places
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "EC-1001", nil, kernel.FacilityDefault, &weight, total, time.Now())
//	if err != nil {
//	    return err
//	}
//	entry, err := o.Advance("", "operator@agency", time.Now())
type Order struct {
	id         kernel.UUID
	guide      string
	customerID *kernel.UUID
	weightLbs  *decimal.Decimal
	total      decimal.Decimal
	status     Status
	facility   kernel.Facility
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewOrder creates an order in PreAlert. customerID and weightLbs are optional.
// The caller persists IntakeEntry together with the order.
func NewOrder(
	id kernel.UUID,
	guide string,
	customerID *kernel.UUID,
	facility kernel.Facility,
	weightLbs *decimal.Decimal,
	total decimal.Decimal,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, guide, customerID, facility, weightLbs, total, PreAlert, createdAt)
}

// RestoreOrder rebuilds an order read from storage, in any status.
func RestoreOrder(
	id kernel.UUID,
	guide string,
	customerID *kernel.UUID,
	facility kernel.Facility,
	weightLbs *decimal.Decimal,
	total decimal.Decimal,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    status,
		facility:  facility,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setGuide(guide),
		o.setCustomer(customerID),
		facility.Validate(),
		status.Validate(),
		o.setWeight(weightLbs),
		o.setTotal(total),
		validateTimestamp(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Guide() string {
	return o.guide
}

// CustomerID returns nil for orders without an owner.
func (o *Order) CustomerID() *kernel.UUID {
	if o.customerID == nil {
		return nil
	}
	id := *o.customerID
	return &id
}

// WeightLbs returns nil when the package has not been weighed.
func (o *Order) WeightLbs() *decimal.Decimal {
	return kernel.OptionalDecimal(o.weightLbs)
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Facility() kernel.Facility {
	return o.facility
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IntakeEntry is the first history entry of a new order.
func (o *Order) IntakeEntry(actor string) (HistoryEntry, error) {
	return newHistoryEntry(o.id, Unknown, o.status, KindIntake, o.status.DefaultDescription(), actor, o.createdAt)
}

// Transition applies req and returns the history entry the caller must persist
// in the same transaction as the new status.
//
// Rules, in order:
//   - moving to the current status is refused with InvalidTransitionError
//   - a forward move out of a terminal status is refused with AlreadyTerminalError
//   - a forward move to an earlier status is refused with InvalidTransitionError
//   - an administrative correction may reach any other status
//
// The order is left untouched when an error is returned.
func (o *Order) Transition(req TransitionRequest, actor string, at time.Time) (HistoryEntry, error) {
	if err := req.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := errors.Join(validateActor(actor), validateTimestamp(at)); err != nil {
		return HistoryEntry{}, err
	}

	from, to := o.status, req.Target()
	if from == to {
		return HistoryEntry{}, &InvalidTransitionError{From: from, To: to}
	}
	if !req.IsCorrection() {
		if from.IsTerminal() {
			return HistoryEntry{}, &AlreadyTerminalError{Status: from, Target: to}
		}
		if !from.CanAdvanceTo(to) {
			return HistoryEntry{}, &InvalidTransitionError{From: from, To: to}
		}
	}

	description := req.Description()
	if description == "" {
		description = to.DefaultDescription()
	}

	entry, err := newHistoryEntry(o.id, from, to, req.Kind(), description, actor, at)
	if err != nil {
		return HistoryEntry{}, err
	}
	o.status = to
	return entry, nil
}

// Advance moves the order to its immediate successor. A delivered order yields
// AlreadyTerminalError.
func (o *Order) Advance(description, actor string, at time.Time) (HistoryEntry, error) {
	next, err := o.status.Next()
	if err != nil {
		return HistoryEntry{}, err
	}
	req, err := Forward(next, description)
	if err != nil {
		return HistoryEntry{}, err
	}
	return o.Transition(req, actor, at)
}

// ChangeWeight records a new weight and the total priced for it.
func (o *Order) ChangeWeight(weightLbs *decimal.Decimal, total decimal.Decimal) error {
	current := o.weightLbs
	if err := o.setWeight(weightLbs); err != nil {
		return err
	}
	if err := o.setTotal(total); err != nil {
		o.weightLbs = current
		return err
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setGuide(guide string) error {
	guide = strings.TrimSpace(guide)
	if guide == "" {
		return errs.NewValueIsRequiredError("guide")
	}
	if !guidePattern.MatchString(guide) {
		return errs.NewValueIsInvalidErrorWithCause("guide",
			fmt.Errorf("%q must be 1-40 letters, digits or dashes", guide))
	}
	o.guide = guide
	return nil
}

func (o *Order) setCustomer(customerID *kernel.UUID) error {
	if customerID == nil {
		o.customerID = nil
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	id := *customerID
	o.customerID = &id
	return nil
}

func (o *Order) setWeight(weightLbs *decimal.Decimal) error {
	if weightLbs != nil && weightLbs.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s is negative", weightLbs.String()))
	}
	o.weightLbs = kernel.OptionalDecimal(weightLbs)
	return nil
}

func (o *Order) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s is negative", total.String()))
	}
	o.total = kernel.RoundMoney(total)
	return nil
}
