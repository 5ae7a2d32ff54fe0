package grid

import (
	"testing"
	"time"

	"tripgrid/internal/trip"
)

func eventAt(id, clock string, duration int) trip.Event {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
	mins := TimeToMinutes(clock)
	start := day.Add(time.Duration(mins) * time.Minute)
	return trip.Event{
		ID:              id,
		Title:           id,
		StartsAt:        &start,
		DurationMinutes: duration,
		Metadata:        trip.Metadata{Category: trip.CategoryActivity},
	}
}

func TestConnectors_GapBetweenEvents(t *testing.T) {
	l := NewLayout(30)

	// Breakfast 08:00-09:00, museum at 11:00: two free hours between.
	events := []trip.Event{
		eventAt("breakfast", "08:00", 60),
		eventAt("museum", "11:00", 120),
	}

	got := l.Connectors(events)
	if len(got) != 1 {
		t.Fatalf("Connectors() returned %d connectors, want 1", len(got))
	}

	c := got[0]
	if c.FromID != "breakfast" || c.ToID != "museum" {
		t.Errorf("connector links %s -> %s, want breakfast -> museum", c.FromID, c.ToID)
	}
	if c.StartRow != 19 || c.EndRow != 23 {
		t.Errorf("connector rows [%d, %d), want [19, 23)", c.StartRow, c.EndRow)
	}
	if c.GapMinutes != 120 {
		t.Errorf("GapMinutes = %d, want 120", c.GapMinutes)
	}
	if c.Tight {
		t.Error("two-hour gap flagged tight")
	}
}

func TestConnectors_BackToBack(t *testing.T) {
	l := NewLayout(30)

	events := []trip.Event{
		eventAt("a", "09:00", 60),
		eventAt("b", "10:00", 60),
	}

	if got := l.Connectors(events); len(got) != 0 {
		t.Errorf("back-to-back events produced %d connectors, want 0", len(got))
	}
}

func TestConnectors_TightGap(t *testing.T) {
	// With 15-minute slots a 45-minute event ends mid-slot; the next event
	// one slot later leaves a sub-slot gap.
	l := NewLayout(15)

	events := []trip.Event{
		eventAt("a", "09:00", 50),
		eventAt("b", "10:00", 30),
	}

	got := l.Connectors(events)
	if len(got) != 1 {
		t.Fatalf("Connectors() returned %d connectors, want 1", len(got))
	}
	if got[0].GapMinutes != 10 {
		t.Errorf("GapMinutes = %d, want 10", got[0].GapMinutes)
	}
	if !got[0].Tight {
		t.Error("10-minute gap with 15-minute slots not flagged tight")
	}
}

func TestConnectors_OverlapEmitsNothing(t *testing.T) {
	l := NewLayout(30)

	// 09:14+44min runs to 09:58, eight minutes past the next start. Slot
	// rounding puts the pair on separate rows, but an overlap is never a
	// gap.
	events := []trip.Event{
		eventAt("a", "09:14", 44),
		eventAt("b", "09:50", 30),
	}

	if got := l.Connectors(events); len(got) != 0 {
		t.Errorf("overlapping events produced %d connectors, want 0: %+v", len(got), got)
	}
}

func TestConnectors_SkipsUnscheduled(t *testing.T) {
	l := NewLayout(30)

	untimed := trip.Event{ID: "untimed", Title: "untimed"}
	events := []trip.Event{
		eventAt("a", "09:00", 60),
		untimed,
		eventAt("b", "12:00", 60),
	}

	got := l.Connectors(events)
	if len(got) != 1 {
		t.Fatalf("Connectors() returned %d connectors, want 1", len(got))
	}
	if got[0].FromID != "a" || got[0].ToID != "b" {
		t.Errorf("connector links %s -> %s, want a -> b", got[0].FromID, got[0].ToID)
	}
}

func TestConnectors_ZeroDurationBreaksChain(t *testing.T) {
	l := NewLayout(30)

	events := []trip.Event{
		eventAt("a", "09:00", 0),
		eventAt("b", "12:00", 60),
	}

	// An event with no duration has no end, so no gap can be measured
	// from it.
	if got := l.Connectors(events); len(got) != 0 {
		t.Errorf("zero-duration predecessor produced %d connectors, want 0", len(got))
	}
}

func TestConnectors_Empty(t *testing.T) {
	l := NewLayout(30)
	if got := l.Connectors(nil); len(got) != 0 {
		t.Errorf("Connectors(nil) returned %d connectors, want 0", len(got))
	}
}
