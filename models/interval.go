package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds every time-of-day value handled by the system.
const MinutesPerDay = 24 * 60

// Interval is a half-open [Start, End) time-of-day range, in minutes from
// midnight (e.g. 540 for 09:00). Both endpoints fall on the same calendar day.
type Interval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Overlaps reports whether two intervals share at least one instant.
// Adjacent intervals (a.End == b.Start) do not overlap; identical ones do.
// This is the single overlap predicate for the whole system - conflict checks
// elsewhere must delegate here instead of re-deriving the arithmetic.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Contains reports whether a fully accommodates b.
func (a Interval) Contains(b Interval) bool {
	return a.Start <= b.Start && b.End <= a.End
}

// Valid reports whether the interval is non-degenerate and lies within a
// single day.
func (a Interval) Valid() bool {
	return a.Start >= 0 && a.Start < a.End && a.End <= MinutesPerDay
}

// AddDuration computes the end time for an interval starting at start and
// lasting the given number of minutes. Intervals never cross midnight; a
// result past 24:00 is rejected rather than wrapped.
func AddDuration(start, minutes int) (int, error) {
	if start < 0 || start >= MinutesPerDay {
		return 0, fmt.Errorf("start time %d out of range", start)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %d", minutes)
	}
	end := start + minutes
	if end > MinutesPerDay {
		return 0, fmt.Errorf("interval starting at %s with duration %d minutes crosses midnight", FormatClock(start), minutes)
	}
	return end, nil
}

// ParseClock converts an "HH:mm" wall-clock string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
