package order

import (
	"errors"
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
// Callers classify state-machine rejections with errors.Is against this value.
var ErrInvalidTransition = errors.New("status transition is invalid")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> AwaitingPickup ──> PickedUp ──┬──> Delivered (terminal)
//	                ^    ^             │      │
//	                │    └── Returned <┘──────┘
//	                └─────── Returned
//
// Pending is the sole initial state. Delivered is terminal and has no
// outgoing transitions. Returned orders may re-enter AwaitingPickup or
// PickedUp for another delivery attempt.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// AwaitingPickup indicates the order is ready at the distribution
	// center, waiting for its delivery agent.
	AwaitingPickup

	// PickedUp indicates the delivery agent has collected the order
	// and it is in transit.
	PickedUp

	// Delivered indicates the order reached its recipient.
	// This is a final state with no further transitions allowed.
	Delivered

	// Returned indicates the delivery attempt failed and the order went
	// back to the distribution center. Returned orders can re-enter the
	// pickup flow.
	Returned
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		AwaitingPickup: "AwaitingPickup",
		PickedUp:       "PickedUp",
		Delivered:      "Delivered",
		Returned:       "Returned",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		AwaitingPickup: "AwaitingPickup",
		PickedUp:       "PickedUp",
		Delivered:      "Delivered",
		Returned:       "Returned",
	}
}

// getAllowedTransitions returns the fixed transition table of the order
// lifecycle. Adding a state requires one table edit; nothing else in the
// state machine inspects individual statuses.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {AwaitingPickup},
		AwaitingPickup: {PickedUp},
		PickedUp:       {Delivered, Returned},
		Returned:       {AwaitingPickup, PickedUp},
		Delivered:      {},
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending, AwaitingPickup, PickedUp, Delivered, Returned.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(getAllowedTransitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the transition table allows moving from
// the current status to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransitionTo checks the transition against the table without
// performing it. Returns an InvalidTransitionError carrying the attempted
// from/to pair if the edge does not exist.
func (s Status) ValidateTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return NewInvalidTransitionError(s, next)
	}
	return nil
}

// InvalidTransitionError reports a status change that is not reachable from
// the current status. It carries the attempted from/to pair for diagnostics.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// attempted from/to pair.
func NewInvalidTransitionError(from Status, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
