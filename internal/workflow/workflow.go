// Package workflow models the application review lifecycle.
//
// Two operations exist on purpose: SetStatus accepts any declared status
// (the historical admin-override behavior), Transition enforces the edge
// table below and rejects everything else.
package workflow

import (
	"fmt"

	"gamecraft/internal/database"
)

// ErrInvalidTransition marks a rejected lifecycle edge.
type ErrInvalidTransition struct {
	From database.ApplicationStatus
	To   database.ApplicationStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// transitions is the allowed edge set:
//
//	SUBMITTED -> REVIEWING
//	REVIEWING -> INTERVIEW_SCHEDULED | ACCEPTED | REJECTED
//	INTERVIEW_SCHEDULED -> INTERVIEW_COMPLETED
//	INTERVIEW_COMPLETED -> ACCEPTED | REJECTED
//
// WITHDRAWN is reachable from any non-terminal state. ACCEPTED,
// REJECTED and WITHDRAWN are terminal.
var transitions = map[database.ApplicationStatus][]database.ApplicationStatus{
	database.StatusSubmitted:          {database.StatusReviewing},
	database.StatusReviewing:          {database.StatusInterviewScheduled, database.StatusAccepted, database.StatusRejected},
	database.StatusInterviewScheduled: {database.StatusInterviewCompleted},
	database.StatusInterviewCompleted: {database.StatusAccepted, database.StatusRejected},
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s database.ApplicationStatus) bool {
	switch s {
	case database.StatusAccepted, database.StatusRejected, database.StatusWithdrawn:
		return true
	}
	return false
}

// CanTransition reports whether the edge from -> to is allowed.
func CanTransition(from, to database.ApplicationStatus) bool {
	if from == to {
		return false
	}
	if to == database.StatusWithdrawn {
		return !IsTerminal(from)
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the edge and returns the new status, or an
// *ErrInvalidTransition when the edge is not in the table.
func Transition(from, to database.ApplicationStatus) (database.ApplicationStatus, error) {
	if !CanTransition(from, to) {
		return "", &ErrInvalidTransition{From: from, To: to}
	}
	return to, nil
}
