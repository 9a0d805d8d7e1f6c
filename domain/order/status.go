package order

import "strings"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusAbandoned Status = "ABANDONED"
	StatusShipped   Status = "SHIPPED"
)

// ParseStatus resolves a status from its case-insensitive string form.
func ParseStatus(value string) (Status, bool) {
	for _, s := range []Status{StatusNew, StatusPaid, StatusCancelled, StatusAbandoned, StatusShipped} {
		if strings.EqualFold(string(s), value) {
			return s, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusAbandoned || s == StatusShipped
}

// UpdateStatusResult is the outcome of a legal status transition. Revoked
// signals that the transition releases the order's reserved stock back to
// the books it was debited from.
type UpdateStatusResult struct {
	Status  Status
	Revoked bool
}

// transitions is the legal transition table. Absent (from, to) pairs are
// rejected with InvalidStatusTransitionError.
var transitions = map[Status]map[Status]UpdateStatusResult{
	StatusNew: {
		StatusPaid:      {Status: StatusPaid},
		StatusCancelled: {Status: StatusCancelled, Revoked: true},
		StatusAbandoned: {Status: StatusAbandoned, Revoked: true},
	},
	StatusPaid: {
		StatusShipped: {Status: StatusShipped},
	},
}

// Transition resolves the requested status change against the transition
// table. It is a pure function of (current, requested).
func Transition(current, requested Status) (UpdateStatusResult, error) {
	if result, ok := transitions[current][requested]; ok {
		return result, nil
	}
	return UpdateStatusResult{}, NewInvalidStatusTransitionError(current, requested)
}
