package workflow

import (
	"errors"
	"testing"

	"gamecraft/internal/database"
)

func TestTransition_HappyPath(t *testing.T) {
	path := []database.ApplicationStatus{
		database.StatusSubmitted,
		database.StatusReviewing,
		database.StatusInterviewScheduled,
		database.StatusInterviewCompleted,
		database.StatusAccepted,
	}

	for i := 0; i < len(path)-1; i++ {
		got, err := Transition(path[i], path[i+1])
		if err != nil {
			t.Fatalf("Transition(%s, %s): %v", path[i], path[i+1], err)
		}
		if got != path[i+1] {
			t.Fatalf("Transition(%s, %s) = %s", path[i], path[i+1], got)
		}
	}
}

func TestTransition_RejectsSkippingStages(t *testing.T) {
	cases := [][2]database.ApplicationStatus{
		{database.StatusSubmitted, database.StatusAccepted},
		{database.StatusSubmitted, database.StatusInterviewScheduled},
		{database.StatusInterviewScheduled, database.StatusAccepted},
		{database.StatusReviewing, database.StatusInterviewCompleted},
	}

	for _, c := range cases {
		if _, err := Transition(c[0], c[1]); err == nil {
			t.Errorf("Transition(%s, %s) expected error", c[0], c[1])
		}
	}
}

func TestTransition_TerminalStatesHaveNoEdges(t *testing.T) {
	terminals := []database.ApplicationStatus{
		database.StatusAccepted,
		database.StatusRejected,
		database.StatusWithdrawn,
	}

	for _, from := range terminals {
		if !IsTerminal(from) {
			t.Errorf("IsTerminal(%s) = false", from)
		}
		for _, to := range database.ApplicationStatuses() {
			if from == to {
				continue
			}
			if CanTransition(from, to) {
				t.Errorf("CanTransition(%s, %s) = true, terminal state must not move", from, to)
			}
		}
	}
}

func TestTransition_WithdrawnFromAnyNonTerminal(t *testing.T) {
	nonTerminals := []database.ApplicationStatus{
		database.StatusSubmitted,
		database.StatusReviewing,
		database.StatusInterviewScheduled,
		database.StatusInterviewCompleted,
	}

	for _, from := range nonTerminals {
		if !CanTransition(from, database.StatusWithdrawn) {
			t.Errorf("CanTransition(%s, WITHDRAWN) = false", from)
		}
	}
}

func TestTransition_SelfEdgeRejected(t *testing.T) {
	_, err := Transition(database.StatusReviewing, database.StatusReviewing)
	var invalid *ErrInvalidTransition
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidTransition, got %v", err)
	}
	if invalid.From != database.StatusReviewing || invalid.To != database.StatusReviewing {
		t.Fatalf("unexpected edge in error: %v", invalid)
	}
}
