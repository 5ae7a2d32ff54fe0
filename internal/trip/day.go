package trip

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"tripgrid/internal/dateutil"
)

// Day holds the ordered events of a single calendar date within a plan.
// Events are kept sorted by StartsAt ascending; untimed events sort last,
// ordered by title.
type Day struct {
	ID     string
	Label  string
	Date   time.Time // midnight, no time component
	Index  int       // 1-based position within the plan
	Events []Event
}

// NewDay creates an empty Day for the given date and 1-based index.
func NewDay(date time.Time, index int) Day {
	return Day{
		ID:    fmt.Sprintf("day-%d", index),
		Label: fmt.Sprintf("Day %d", index),
		Date:  dateutil.TruncateToDay(date),
		Index: index,
	}
}

// Sort restores the day's event ordering invariant.
func (d *Day) Sort() {
	slices.SortStableFunc(d.Events, compareEvents)
}

// compareEvents orders scheduled events by start time, untimed events last
// by title.
func compareEvents(a, b Event) int {
	switch {
	case a.StartsAt != nil && b.StartsAt != nil:
		if c := a.StartsAt.Compare(*b.StartsAt); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	case a.StartsAt != nil:
		return -1
	case b.StartsAt != nil:
		return 1
	default:
		return strings.Compare(a.Title, b.Title)
	}
}

// FindEvent returns the index of the event with the given ID, or -1.
func (d *Day) FindEvent(id string) int {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	out.Events = make([]Event, len(d.Events))
	for i := range d.Events {
		out.Events[i] = d.Events[i].Clone()
	}
	return out
}

// DayStats holds aggregate numbers for a single day.
type DayStats struct {
	TotalEvents   int
	UntimedEvents int
	BusyMinutes   int
	MinutesByKind map[Category]int
}

// Stats calculates statistics for the day.
func (d *Day) Stats() DayStats {
	stats := DayStats{MinutesByKind: make(map[Category]int)}
	for i := range d.Events {
		e := &d.Events[i]
		stats.TotalEvents++
		if !e.Scheduled() {
			stats.UntimedEvents++
			continue
		}
		mins := e.Duration()
		stats.BusyMinutes += mins
		stats.MinutesByKind[e.Metadata.Category] += mins
	}
	return stats
}
