package order

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

// MaxDescriptionLength bounds history descriptions and correction reasons.
const MaxDescriptionLength = 500

// TransitionKind tells how a status change was requested.
type TransitionKind int

const (
	KindUnknown TransitionKind = iota
	// KindIntake marks the history entry written when the order is created.
	KindIntake
	// KindForward is a regular move to a later status.
	KindForward
	// KindCorrection is an operator override that may move in any direction.
	KindCorrection
)

var kindNames = map[TransitionKind]string{
	KindIntake:     "INTAKE",
	KindForward:    "FORWARD",
	KindCorrection: "ADMINISTRATIVE_CORRECTION",
}

func (k TransitionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate fails for KindUnknown and unknown values.
func (k TransitionKind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("transition kind", fmt.Errorf("%d is not a valid kind", int(k)))
	}
	return nil
}

// TransitionRequest is a requested status change: either Forward or AdministrativeCorrection.
// The variant is explicit so that the history entry it produces records which rule applied.
//
// Example:
//
//	req, err := order.Forward(order.Dispatched, "Left Miami warehouse")
//	if err != nil {
//	    return err
//	}
//	entry, err := o.Transition(req, "operator@agency", time.Now())
//
//	fix, err := order.AdministrativeCorrection(order.InCustoms, "Delivered by mistake, still held by customs")
type TransitionRequest struct {
	kind        TransitionKind
	target      Status
	description string
	guard       guard.ConstructorGuard
}

// Forward requests a move to a later status. An empty description is replaced by
// the target's default description when the transition is applied.
func Forward(target Status, description string) (TransitionRequest, error) {
	if err := target.Validate(); err != nil {
		return TransitionRequest{}, err
	}
	description = strings.TrimSpace(description)
	if err := validateDescription("description", description); err != nil {
		return TransitionRequest{}, err
	}
	return TransitionRequest{
		kind:        KindForward,
		target:      target,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// AdministrativeCorrection requests a move to any other status, bypassing the
// forward-only rule. The reason is mandatory and becomes the history description.
func AdministrativeCorrection(target Status, reason string) (TransitionRequest, error) {
	if err := target.Validate(); err != nil {
		return TransitionRequest{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return TransitionRequest{}, errs.NewValueIsRequiredError("correction reason")
	}
	if err := validateDescription("correction reason", reason); err != nil {
		return TransitionRequest{}, err
	}
	return TransitionRequest{
		kind:        KindCorrection,
		target:      target,
		description: reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the request came from Forward or AdministrativeCorrection.
func (r TransitionRequest) Validate() error {
	return r.guard.Validate(ErrTransitionRequestIsNotConstructed)
}

func (r TransitionRequest) Kind() TransitionKind {
	return r.kind
}

func (r TransitionRequest) Target() Status {
	return r.target
}

// Description is the free text (or the correction reason).
func (r TransitionRequest) Description() string {
	return r.description
}

func (r TransitionRequest) IsCorrection() bool {
	return r.kind == KindCorrection
}

func validateDescription(param, s string) error {
	if n := utf8.RuneCountInString(s); n > MaxDescriptionLength {
		return errs.NewValueIsOutOfRangeError(param+" length", n, 0, MaxDescriptionLength)
	}
	return nil
}
