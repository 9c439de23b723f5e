package scheduler

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestCallWindowContains(t *testing.T) {
	window := CallWindow{Start: "09:00", End: "17:00", Days: []string{"mon", "tue", "wed", "thu", "fri"}}

	// 2026-08-26 is a Wednesday.
	cases := []struct {
		at   string
		want bool
	}{
		{"2026-08-26T09:00:00Z", true},
		{"2026-08-26T16:59:00Z", true},
		{"2026-08-26T17:00:00Z", false},
		{"2026-08-26T08:59:00Z", false},
		{"2026-08-29T12:00:00Z", false}, // Saturday
	}
	for _, tc := range cases {
		if got := window.Contains(mustTime(t, tc.at)); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestCallWindowOvernight(t *testing.T) {
	window := CallWindow{Start: "20:00", End: "04:00"}

	if !window.Contains(mustTime(t, "2026-08-26T22:00:00Z")) {
		t.Error("22:00 should be inside a 20:00-04:00 window")
	}
	if !window.Contains(mustTime(t, "2026-08-26T03:00:00Z")) {
		t.Error("03:00 should be inside a 20:00-04:00 window")
	}
	if window.Contains(mustTime(t, "2026-08-26T12:00:00Z")) {
		t.Error("12:00 should be outside a 20:00-04:00 window")
	}
}

func TestCallWindowUnboundedIsAlwaysOpen(t *testing.T) {
	window := CallWindow{}
	if !window.Contains(mustTime(t, "2026-08-29T03:00:00Z")) {
		t.Error("empty window should always be open")
	}
}

func TestNextOpeningSameDay(t *testing.T) {
	window := CallWindow{Start: "09:00", End: "17:00", Days: []string{"wed"}}

	now := mustTime(t, "2026-08-26T06:30:00Z") // Wednesday before opening
	got := window.NextOpening(now)
	want := mustTime(t, "2026-08-26T09:00:00Z")
	if !got.Equal(want) {
		t.Fatalf("NextOpening() = %s, want %s", got, want)
	}
}

func TestNextOpeningSkipsClosedDays(t *testing.T) {
	window := CallWindow{Start: "09:00", End: "17:00", Days: []string{"mon"}}

	now := mustTime(t, "2026-08-26T12:00:00Z") // Wednesday inside hours, wrong day
	got := window.NextOpening(now)
	want := mustTime(t, "2026-08-31T09:00:00Z") // next Monday
	if !got.Equal(want) {
		t.Fatalf("NextOpening() = %s, want %s", got, want)
	}
}

func TestNextOpeningInsideWindowReturnsNow(t *testing.T) {
	window := CallWindow{Start: "09:00", End: "17:00"}

	now := mustTime(t, "2026-08-26T10:00:00Z")
	if got := window.NextOpening(now); !got.Equal(now) {
		t.Fatalf("NextOpening() = %s, want now", got)
	}
}
