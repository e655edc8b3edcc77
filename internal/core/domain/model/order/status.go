package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Allowed transitions:
//
//	Pending ──> Confirmed ──> Paid ──> Preparing ──> ReadyForShipment ──> Shipped ──> Delivered ──> Refunded
//	   │            │           │          │
//	   └────────────┴───────────┴──────────┴──> Cancelled
//
// Cancelled and Refunded are terminal. Transitions are looked up in a table
// (see CanTransition); nothing else in the package decides them.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota
	Pending
	Confirmed
	Paid
	Preparing
	ReadyForShipment
	Shipped
	Delivered
	Cancelled
	Refunded
)

var statusNames = map[Status]string{
	Pending:          "PENDING",
	Confirmed:        "CONFIRMED",
	Paid:             "PAID",
	Preparing:        "PREPARING",
	ReadyForShipment: "READY_FOR_SHIPMENT",
	Shipped:          "SHIPPED",
	Delivered:        "DELIVERED",
	Cancelled:        "CANCELLED",
	Refunded:         "REFUNDED",
}

var statusDescriptions = map[Status]string{
	Pending:          "Order pending confirmation",
	Confirmed:        "Order confirmed",
	Paid:             "Order paid",
	Preparing:        "Order being prepared",
	ReadyForShipment: "Order ready for shipment",
	Shipped:          "Order shipped",
	Delivered:        "Order delivered",
	Cancelled:        "Order cancelled",
	Refunded:         "Order refunded",
}

// transitions is the state machine. A status absent from the map, or mapped
// to an empty list, is terminal.
var transitions = map[Status][]Status{
	Pending:          {Confirmed, Cancelled},
	Confirmed:        {Paid, Cancelled},
	Paid:             {Preparing, Cancelled},
	Preparing:        {ReadyForShipment, Cancelled},
	ReadyForShipment: {Shipped},
	Shipped:          {Delivered},
	Delivered:        {Refunded},
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		Pending, Confirmed, Paid, Preparing, ReadyForShipment,
		Shipped, Delivered, Cancelled, Refunded,
	}
}

// ParseStatus resolves a status name such as "READY_FOR_SHIPMENT".
// Matching ignores case and surrounding spaces.
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known status", name),
	)
}

// CanTransition reports whether the table allows moving from one status to
// another. Self-transitions and anything involving Unknown are rejected.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Description is the human-readable label shown to customers.
func (s Status) Description() string {
	return statusDescriptions[s]
}

// CanTransitionTo is CanTransition with s as the source.
func (s Status) CanTransitionTo(to Status) bool {
	return CanTransition(s, to)
}

// NextStatuses lists the statuses reachable from s in one step.
func (s Status) NextStatuses() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
