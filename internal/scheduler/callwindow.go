package scheduler

import (
	"strconv"
	"strings"
	"time"
)

// CallWindow is the daily interval during which a campaign may dial.
// Empty start/end means the campaign dials around the clock; an empty day
// list means every day.
type CallWindow struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
	Days  []string
}

var dayKeys = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// Contains reports whether dialing is allowed at the given moment.
// Windows with End before Start span midnight.
func (w CallWindow) Contains(now time.Time) bool {
	if !w.dayAllowed(now.Weekday()) {
		return false
	}

	start, okStart := parseHHMM(w.Start)
	end, okEnd := parseHHMM(w.End)
	if !okStart || !okEnd {
		return true
	}

	minute := now.Hour()*60 + now.Minute()
	if start <= end {
		return minute >= start && minute < end
	}
	// Overnight window, e.g. 20:00-04:00.
	return minute >= start || minute < end
}

// NextOpening returns the earliest moment at or after now when dialing is
// allowed. Windows that never open return now unchanged.
func (w CallWindow) NextOpening(now time.Time) time.Time {
	if w.Contains(now) {
		return now
	}

	start, ok := parseHHMM(w.Start)
	if !ok {
		start = 0
	}

	for daysAhead := 0; daysAhead <= 7; daysAhead++ {
		day := now.AddDate(0, 0, daysAhead)
		opening := time.Date(day.Year(), day.Month(), day.Day(), start/60, start%60, 0, 0, now.Location())
		if opening.Before(now) {
			continue
		}
		if w.dayAllowed(opening.Weekday()) {
			return opening
		}
	}
	return now
}

func (w CallWindow) dayAllowed(weekday time.Weekday) bool {
	if len(w.Days) == 0 {
		return true
	}
	key := dayKeys[weekday]
	for _, day := range w.Days {
		if strings.EqualFold(day, key) {
			return true
		}
	}
	return false
}

// parseHHMM converts "HH:MM" to minutes since midnight.
func parseHHMM(value string) (int, bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
