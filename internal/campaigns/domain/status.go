// Package domain holds the campaign lifecycle rules.
package domain

import (
	"fmt"

	"recruit_portal_backend/platform/apperr"
)

// Status is a campaign lifecycle state.
type Status string

// Campaign lifecycle states.
const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the legal state machine. Completed and cancelled are
// terminal.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusScheduled, StatusRunning, StatusCancelled},
	StatusScheduled: {StatusRunning, StatusCancelled},
	StatusRunning:   {StatusPaused, StatusCompleted, StatusCancelled},
	StatusPaused:    {StatusRunning, StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known campaign status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether moving from s to target is legal.
func (s Status) CanTransition(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns a validation error for illegal moves.
func ValidateTransition(from, to Status) error {
	if !to.Valid() {
		return apperr.Validation(fmt.Sprintf("unknown campaign status %q", to))
	}
	if from == to {
		return nil
	}
	if !from.CanTransition(to) {
		return apperr.Validation(fmt.Sprintf("cannot transition campaign from %s to %s", from, to))
	}
	return nil
}
