package grid

import (
	"tripgrid/internal/trip"
)

// Connector is an advisory travel-gap annotation between two consecutive
// scheduled events on the same day. It spans the grid rows [StartRow,
// EndRow) between the earlier event's end and the later event's start.
type Connector struct {
	FromID     string
	ToID       string
	StartRow   int
	EndRow     int
	GapMinutes int
	Tight      bool
}

// Connectors derives the travel-gap connectors for a day's events. The
// events must already be sorted by start time. Pairs with an unresolvable
// start or duration on either side are skipped, as are back-to-back or
// overlapping pairs. A connector is flagged tight when the gap between the
// two events is shorter than one slot.
func (l Layout) Connectors(events []trip.Event) []Connector {
	var out []Connector

	var prev *trip.Event
	for i := range events {
		e := &events[i]
		if !e.Scheduled() {
			continue
		}
		if prev == nil {
			if e.Duration() > 0 {
				prev = e
			}
			continue
		}

		endRow := l.RowEndFromDuration(prev.StartClock(), prev.Duration())
		startRow := l.RowStartFromTime(e.StartClock())
		gap := TimeToMinutes(e.StartClock()) -
			(TimeToMinutes(prev.StartClock()) + prev.Duration())
		// Row rounding can separate rows for pairs that overlap in real
		// minutes; the gap in minutes decides, not the rows.
		if startRow > endRow && gap > 0 {
			out = append(out, Connector{
				FromID:     prev.ID,
				ToID:       e.ID,
				StartRow:   endRow,
				EndRow:     startRow,
				GapMinutes: gap,
				Tight:      gap < l.SlotMinutes,
			})
		}

		if e.Duration() > 0 {
			prev = e
		} else {
			prev = nil
		}
	}
	return out
}
