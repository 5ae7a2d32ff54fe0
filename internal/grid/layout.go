// Package grid holds the pure slot-geometry math for the scheduling grid:
// wall-clock time to slot index to grid row conversions, and the travel-gap
// connectors derived from a day's events. Nothing here carries state; every
// value is recomputed from the canonical time fields on demand.
package grid

import (
	"fmt"
	"strings"
)

const (
	// DefaultSlotMinutes is the slot width used when none is configured.
	DefaultSlotMinutes = 30
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// SentinelMinutes is the 09:00 fallback applied when a time-of-day
	// cannot be parsed; the grid must always be renderable.
	SentinelMinutes = 9 * 60
)

// Layout converts between wall-clock times, slot indices, and grid rows
// for a fixed slot width.
type Layout struct {
	SlotMinutes int
}

// NewLayout creates a Layout, defaulting to 30-minute slots.
func NewLayout(slotMinutes int) Layout {
	if slotMinutes <= 0 || slotMinutes > MinutesPerDay {
		slotMinutes = DefaultSlotMinutes
	}
	return Layout{SlotMinutes: slotMinutes}
}

// TotalSlots returns the number of slots in a 24-hour day.
func (l Layout) TotalSlots() int {
	return MinutesPerDay / l.SlotMinutes
}

// SlotIndexFromTime converts a time string to a slot index, rounding to the
// nearest slot and clamping to the day.
func (l Layout) SlotIndexFromTime(t string) int {
	slot := roundDiv(TimeToMinutes(t), l.SlotMinutes)
	if slot < 0 {
		return 0
	}
	if slot > l.TotalSlots()-1 {
		return l.TotalSlots() - 1
	}
	return slot
}

// RowStartFromTime returns the 1-based grid row for a start time.
func (l Layout) RowStartFromTime(t string) int {
	return l.SlotIndexFromTime(t) + 1
}

// RowEndFromDuration returns the exclusive end row for an event starting at
// t and lasting durationMinutes. Every event occupies at least one slot.
func (l Layout) RowEndFromDuration(t string, durationMinutes int) int {
	span := roundDiv(durationMinutes, l.SlotMinutes)
	if span < 1 {
		span = 1
	}
	return l.RowStartFromTime(t) + span
}

// SlotToMinutes converts a slot index to minutes from midnight.
func (l Layout) SlotToMinutes(slot int) int {
	return slot * l.SlotMinutes
}

// SlotToTime converts a slot index to a "HH:MM" time string.
func (l Layout) SlotToTime(slot int) string {
	return MinutesToTime(l.SlotToMinutes(slot))
}

func roundDiv(a, b int) int {
	if a < 0 {
		return 0
	}
	return (a + b/2) / b
}

// TimeToMinutes converts a time-of-day string to minutes since midnight.
// It accepts "HH:MM", optional seconds and fractions ("HH:MM:SS.sss"), and
// AM/PM suffixes. Unparseable input falls back to the 09:00 sentinel so a
// bad time never breaks rendering.
func TimeToMinutes(t string) int {
	mins, err := ParseClock(t)
	if err != nil {
		return SentinelMinutes
	}
	return mins
}

// ParseClock parses a time-of-day string into minutes since midnight.
func ParseClock(t string) (int, error) {
	s := strings.TrimSpace(t)
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}

	meridiem := ""
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed time %q", t)
	}

	hours, err := parseDigits(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed hour in %q", t)
	}
	mins, err := parseDigits(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed minute in %q", t)
	}
	// Seconds and fractions are tolerated and discarded.

	switch meridiem {
	case "PM":
		if hours < 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}

	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("time %q out of range", t)
	}
	return hours*60 + mins, nil
}

func parseDigits(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, fmt.Errorf("bad field %q", s)
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("bad field %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// MinutesToTime converts minutes since midnight to zero-padded "HH:MM".
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
