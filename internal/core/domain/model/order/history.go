package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

// MaxActorLength bounds the createdBy field.
const MaxActorLength = 100

// HistoryEntry records one status change of an order. Entries are append-only:
// the type has no mutators and repositories only insert them.
type HistoryEntry struct {
	orderID     kernel.UUID
	status      Status
	previous    Status
	kind        TransitionKind
	description string
	createdAt   time.Time
	createdBy   string
	guard       guard.ConstructorGuard
}

// RestoreHistoryEntry rebuilds an entry read from storage. previous is Unknown for intake entries.
func RestoreHistoryEntry(
	orderID kernel.UUID,
	status Status,
	previous Status,
	kind TransitionKind,
	description string,
	createdAt time.Time,
	createdBy string,
) (HistoryEntry, error) {
	entry := HistoryEntry{
		orderID:     orderID,
		status:      status,
		previous:    previous,
		kind:        kind,
		description: description,
		createdAt:   createdAt.UTC(),
		createdBy:   createdBy,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		kind.Validate(),
		validateActor(createdBy),
		validateTimestamp(createdAt),
	); err != nil {
		return HistoryEntry{}, err
	}

	if kind != KindIntake {
		if err := previous.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}

	return entry, nil
}

func newHistoryEntry(
	orderID kernel.UUID,
	previous, status Status,
	kind TransitionKind,
	description, actor string,
	at time.Time,
) (HistoryEntry, error) {
	return RestoreHistoryEntry(orderID, status, previous, kind, description, at, strings.TrimSpace(actor))
}

// Validate ensures the entry was produced by an Order or RestoreHistoryEntry.
func (h HistoryEntry) Validate() error {
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

func (h HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// Status is the status the order moved into.
func (h HistoryEntry) Status() Status {
	return h.status
}

// PreviousStatus is the status the order left; Unknown for the intake entry.
func (h HistoryEntry) PreviousStatus() Status {
	return h.previous
}

func (h HistoryEntry) Kind() TransitionKind {
	return h.kind
}

func (h HistoryEntry) IsCorrection() bool {
	return h.kind == KindCorrection
}

func (h HistoryEntry) Description() string {
	return h.description
}

func (h HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

func (h HistoryEntry) CreatedBy() string {
	return h.createdBy
}

// ValidateWalk checks that entries, oldest first, form a legal path through the
// lifecycle: the first entry is the intake into PreAlert, each entry starts where
// the previous one ended, timestamps never go back, and every non-correction
// entry moves strictly forward.
func ValidateWalk(entries []HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	first := entries[0]
	if first.kind != KindIntake || first.status != PreAlert {
		return fmt.Errorf("%w: history must start with the %s intake entry, got %s %s",
			ErrInvalidTransition, PreAlert, first.kind, first.status)
	}

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.previous != prev.status {
			return fmt.Errorf("%w: entry %d leaves %s but the order was in %s",
				ErrInvalidTransition, i, cur.previous, prev.status)
		}
		if cur.createdAt.Before(prev.createdAt) {
			return fmt.Errorf("%w: entry %d is older than entry %d", ErrInvalidTransition, i, i-1)
		}
		switch cur.kind {
		case KindForward:
			if !cur.previous.CanAdvanceTo(cur.status) {
				return &InvalidTransitionError{From: cur.previous, To: cur.status}
			}
		case KindCorrection:
			if cur.previous == cur.status {
				return &InvalidTransitionError{From: cur.previous, To: cur.status}
			}
		default:
			return fmt.Errorf("%w: entry %d has kind %s", ErrInvalidTransition, i, cur.kind)
		}
	}
	return nil
}

func validateActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	if n := utf8.RuneCountInString(actor); n > MaxActorLength {
		return errs.NewValueIsOutOfRangeError("actor length", n, 1, MaxActorLength)
	}
	return nil
}

func validateTimestamp(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	return nil
}
