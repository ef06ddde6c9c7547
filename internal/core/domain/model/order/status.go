package order

import (
	"strings"

	"buffet/internal/pkg/errs"
)

// Status represents the kitchen-side lifecycle state of an order.
// It implements a forward-only state machine:
//
//	Pending ──> Preparing ──> Ready ──> Completed
//
// Writing the current status again is accepted as a no-op. Jumping forward
// over intermediate states is allowed, moving backward is rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Preparing means the kitchen has started on the order.
	Preparing

	// Ready means the order waits at the counter. Entering this state is
	// what triggers the "order ready" email.
	Ready

	// Completed means the customer collected the order. Final state.
	Completed
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Preparing: "preparing",
	Ready:     "ready",
	Completed: "completed",
}

// ParseStatus maps the wire/storage name of a status to its value.
//
// Returns:
//   - the matching Status for "pending", "preparing", "ready", "completed"
//     (case-insensitive, surrounding spaces ignored)
//   - a ValueIsInvalidError for anything else
func ParseStatus(raw string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for status, statusName := range statusNames {
		if statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status")
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Preparing, Ready, Completed}
}

// Validate checks if the Status value is one of the four valid states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the wire name of the status, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed
}

// Next returns the immediate successor, or Unknown for the final state.
func (s Status) Next() Status {
	switch s {
	case Pending:
		return Preparing
	case Preparing:
		return Ready
	case Ready:
		return Completed
	default:
		return Unknown
	}
}

// TransitionTo computes the outcome of moving from s to next without
// touching any order. It is the single place where the transition policy
// and its side effects are decided.
//
// Valid transitions:
//   - s -> s (idempotent re-write, no effects)
//   - s -> any later state (forward, skipping allowed)
//
// Effects:
//   - EffectNotifyReady when entering Ready from an earlier state
//
// Returns a StatusTransitionError for backward moves and moves out of
// Completed, and a ValueIsInvalidError when either side is not a valid
// status.
func (s Status) TransitionTo(next Status) (Status, []Effect, error) {
	if err := s.Validate(); err != nil {
		return Unknown, nil, err
	}
	if err := next.Validate(); err != nil {
		return Unknown, nil, err
	}

	if next == s {
		return s, nil, nil
	}

	if next < s {
		return Unknown, nil, errs.NewStatusTransitionError(s.String(), next.String())
	}

	var effects []Effect
	if next == Ready {
		effects = append(effects, EffectNotifyReady)
	}
	return next, effects, nil
}
