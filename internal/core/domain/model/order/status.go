package order

import (
	"fmt"
	"strings"

	"courierdesk/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions (forward only, skipping allowed):
//
//	PRE_ALERT ──> CAPTURED_AT_AGENCY ──> DISPATCHED ──> IN_CUSTOMS ──> AWAITING_PAYMENT ──> PAYMENT_APPROVED ──> DELIVERED
//	    │                                                                                                          ▲
//	    └──────────────────────────────────────── any later state ─────────────────────────────────────────────────┘
//
// Backward moves exist only as administrative corrections (see TransitionRequest).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PreAlert is the initial status: the customer announced the package, it has not arrived yet.
	PreAlert

	// CapturedAtAgency means the package was received and weighed at an intake facility.
	CapturedAtAgency

	// Dispatched means the package left the origin facility.
	Dispatched

	// InCustoms means the package is held by customs.
	InCustoms

	// AwaitingPayment means the package cleared customs and waits for the customer to pay.
	AwaitingPayment

	// PaymentApproved means the payment was confirmed.
	PaymentApproved

	// Delivered is the terminal status.
	Delivered
)

// lifecycle is the canonical order of states. Every rule in this file is derived from it.
var lifecycle = []Status{
	PreAlert,
	CapturedAtAgency,
	Dispatched,
	InCustoms,
	AwaitingPayment,
	PaymentApproved,
	Delivered,
}

var statusNames = map[Status]string{
	PreAlert:         "PRE_ALERT",
	CapturedAtAgency: "CAPTURED_AT_AGENCY",
	Dispatched:       "DISPATCHED",
	InCustoms:        "IN_CUSTOMS",
	AwaitingPayment:  "AWAITING_PAYMENT",
	PaymentApproved:  "PAYMENT_APPROVED",
	Delivered:        "DELIVERED",
}

var statusDescriptions = map[Status]string{
	PreAlert:         "Package pre-alerted by customer",
	CapturedAtAgency: "Package captured at agency",
	Dispatched:       "Package dispatched",
	InCustoms:        "Package in customs",
	AwaitingPayment:  "Awaiting payment",
	PaymentApproved:  "Payment approved",
	Delivered:        "Package delivered",
}

// transitions is the forward transition table: each status maps to every later status.
var transitions = buildTransitions()

func buildTransitions() map[Status][]Status {
	table := make(map[Status][]Status, len(lifecycle))
	for i, s := range lifecycle {
		targets := make([]Status, len(lifecycle)-i-1)
		copy(targets, lifecycle[i+1:])
		table[s] = targets
	}
	return table
}

// Lifecycle returns the canonical status order, initial state first.
func Lifecycle() []Status {
	out := make([]Status, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// ParseStatus resolves a status name such as "IN_CUSTOMS" (case-insensitive).
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate fails for Unknown and any value outside the lifecycle.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the canonical name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// DefaultDescription is the history text used when a forward move carries none.
func (s Status) DefaultDescription() string {
	return statusDescriptions[s]
}

// Rank is the 1-based position in the lifecycle; 0 for invalid statuses.
func (s Status) Rank() int {
	for i, candidate := range lifecycle {
		if candidate == s {
			return i + 1
		}
	}
	return 0
}

// IsTerminal reports whether no forward move leaves this status.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}

// AllowedTargets lists the statuses a forward move may reach from s.
func (s Status) AllowedTargets() []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanAdvanceTo reports whether a forward move from s to target is allowed.
func (s Status) CanAdvanceTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Next returns the immediate successor of s.
//
// Returns:
//   - (successor, nil) for non-terminal statuses
//   - AlreadyTerminalError for Delivered
//   - ValueIsInvalidError for invalid statuses
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	targets := transitions[s]
	if len(targets) == 0 {
		return Unknown, &AlreadyTerminalError{Status: s}
	}
	return targets[0], nil
}
