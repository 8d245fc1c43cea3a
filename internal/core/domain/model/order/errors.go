package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for every refused status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyTerminal is returned when a forward move is requested on a delivered order.
	// Errors carrying it also match ErrInvalidTransition.
	ErrAlreadyTerminal = errors.New("order is already in a terminal status")

	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTransitionRequestIsNotConstructed guards TransitionRequest literals.
	ErrTransitionRequestIsNotConstructed = errors.New(
		"TransitionRequest must be created via Forward or AdministrativeCorrection")

	// ErrHistoryEntryIsNotConstructed guards HistoryEntry literals.
	ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created by an Order or RestoreHistoryEntry")
)

// InvalidTransitionError carries the current and the requested status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("%s: order is already in %s", ErrInvalidTransition, e.From)
	}
	return fmt.Sprintf("%s: cannot move order from %s to %s without correction flag", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyTerminalError is returned for forward moves out of a terminal status.
// Target is Unknown when the caller asked for "the next status".
type AlreadyTerminalError struct {
	Status Status
	Target Status
}

func (e *AlreadyTerminalError) Error() string {
	if e.Target == Unknown {
		return fmt.Sprintf("%s: cannot advance past %s", ErrAlreadyTerminal, e.Status)
	}
	return fmt.Sprintf("%s: cannot move order from %s to %s without correction flag", ErrAlreadyTerminal, e.Status, e.Target)
}

func (e *AlreadyTerminalError) Unwrap() []error {
	return []error{ErrAlreadyTerminal, ErrInvalidTransition}
}
