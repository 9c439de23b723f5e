package domain

import (
	"testing"

	"recruit_portal_backend/platform/apperr"
)

func TestLegalTransitions(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusDraft, StatusScheduled},
		{StatusDraft, StatusRunning},
		{StatusDraft, StatusCancelled},
		{StatusScheduled, StatusRunning},
		{StatusScheduled, StatusCancelled},
		{StatusRunning, StatusPaused},
		{StatusRunning, StatusCompleted},
		{StatusRunning, StatusCancelled},
		{StatusPaused, StatusRunning},
		{StatusPaused, StatusCompleted},
		{StatusPaused, StatusCancelled},
	}

	for _, tc := range legal {
		if err := ValidateTransition(tc.from, tc.to); err != nil {
			t.Errorf("ValidateTransition(%s, %s) = %v, want nil", tc.from, tc.to, err)
		}
	}
}

func TestIllegalTransitions(t *testing.T) {
	illegal := []struct{ from, to Status }{
		{StatusDraft, StatusPaused},
		{StatusDraft, StatusCompleted},
		{StatusScheduled, StatusPaused},
		{StatusScheduled, StatusCompleted},
		{StatusCompleted, StatusRunning},
		{StatusCompleted, StatusDraft},
		{StatusCancelled, StatusRunning},
		{StatusCancelled, StatusScheduled},
	}

	for _, tc := range illegal {
		err := ValidateTransition(tc.from, tc.to)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("ValidateTransition(%s, %s) = %v, want validation error", tc.from, tc.to, err)
		}
	}
}

func TestSameStatusIsNoOp(t *testing.T) {
	for _, status := range []Status{StatusDraft, StatusRunning, StatusCompleted} {
		if err := ValidateTransition(status, status); err != nil {
			t.Errorf("ValidateTransition(%s, %s) = %v, want nil", status, status, err)
		}
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	if err := ValidateTransition(StatusDraft, Status("archived")); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("ValidateTransition to unknown status = %v, want validation error", err)
	}
}
