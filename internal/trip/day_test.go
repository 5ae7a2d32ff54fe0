package trip

import (
	"testing"
	"time"
)

func dayEvent(id, title string, clock string, duration int, cat Category) Event {
	e := Event{
		ID:              id,
		Title:           title,
		DurationMinutes: duration,
		Metadata:        Metadata{Category: cat},
	}
	if clock != "" {
		base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
		t, _ := time.Parse("15:04", clock)
		start := base.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		e.StartsAt = &start
	}
	return e
}

func TestDay_Sort(t *testing.T) {
	d := NewDay(time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local), 1)
	d.Events = []Event{
		dayEvent("untimed-b", "Zoo maybe", "", 60, CategoryActivity),
		dayEvent("late", "Dinner", "19:00", 90, CategoryDining),
		dayEvent("untimed-a", "Aquarium maybe", "", 60, CategoryActivity),
		dayEvent("early", "Breakfast", "08:00", 30, CategoryDining),
	}

	d.Sort()

	wantOrder := []string{"early", "late", "untimed-a", "untimed-b"}
	for i, want := range wantOrder {
		if d.Events[i].ID != want {
			t.Fatalf("event %d = %s, want %s (order: %v)", i, d.Events[i].ID, want, eventIDs(d.Events))
		}
	}
}

func TestDay_Sort_StableOnEqualStarts(t *testing.T) {
	d := NewDay(time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local), 1)
	d.Events = []Event{
		dayEvent("b", "B walk", "10:00", 60, CategoryActivity),
		dayEvent("a", "A walk", "10:00", 60, CategoryActivity),
	}

	d.Sort()

	if d.Events[0].ID != "a" {
		t.Errorf("equal starts order by title, got %v", eventIDs(d.Events))
	}
}

func TestDay_Stats(t *testing.T) {
	d := NewDay(time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local), 1)
	d.Events = []Event{
		dayEvent("e1", "Temple", "09:00", 120, CategoryActivity),
		dayEvent("e2", "Lunch", "12:30", 60, CategoryDining),
		dayEvent("e3", "Garden", "14:00", 60, CategoryActivity),
		dayEvent("e4", "Spare", "", 45, CategoryActivity),
	}

	stats := d.Stats()

	if stats.TotalEvents != 4 {
		t.Errorf("TotalEvents = %d, want 4", stats.TotalEvents)
	}
	if stats.UntimedEvents != 1 {
		t.Errorf("UntimedEvents = %d, want 1", stats.UntimedEvents)
	}
	if stats.BusyMinutes != 240 {
		t.Errorf("BusyMinutes = %d, want 240", stats.BusyMinutes)
	}
	if stats.MinutesByKind[CategoryActivity] != 180 {
		t.Errorf("activity minutes = %d, want 180", stats.MinutesByKind[CategoryActivity])
	}
	if stats.MinutesByKind[CategoryDining] != 60 {
		t.Errorf("dining minutes = %d, want 60", stats.MinutesByKind[CategoryDining])
	}
}

func eventIDs(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
