package board

import (
	"testing"
	"time"

	"tripgrid/internal/trip"
)

func testPlan() *trip.Plan {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	p := trip.Empty("trip-1", "kyoto-japan", start, start.AddDate(0, 0, 2))

	p.Days[0].Events = []trip.Event{
		timedEvent("breakfast", "Breakfast", p.Days[0].Date, "08:00", 60),
		timedEvent("museum", "Museum", p.Days[0].Date, "11:00", 120),
	}
	p.Days[1].Events = []trip.Event{
		timedEvent("market", "Market", p.Days[1].Date, "10:00", 90),
	}
	p.Unplaced = []trip.Event{
		poolEvent("spare", "Spare gallery", 60),
	}
	return p
}

func timedEvent(id, title string, date time.Time, clock string, duration int) trip.Event {
	t, _ := time.Parse("15:04", clock)
	start := date.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	return trip.Event{
		ID:              id,
		Title:           title,
		StartsAt:        &start,
		DurationMinutes: duration,
		Metadata:        trip.Metadata{Category: trip.CategoryActivity},
	}
}

func poolEvent(id, title string, duration int) trip.Event {
	return trip.Event{
		ID:              id,
		Title:           title,
		DurationMinutes: duration,
		Metadata:        trip.Metadata{Category: trip.CategoryActivity},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.SetPlan(testPlan())
	if s.Dirty() {
		t.Fatal("store dirty immediately after SetPlan")
	}
	return s
}

func TestStore_DirtyLifecycle(t *testing.T) {
	s := newTestStore(t)

	title := "Late breakfast"
	if !s.UpdateEvent("breakfast", EventPatch{Title: &title}) {
		t.Fatal("UpdateEvent failed")
	}
	if !s.Dirty() {
		t.Error("mutation did not set dirty")
	}

	// Further mutations keep it dirty; only MarkClean clears it.
	s.RemoveEvent("spare")
	if !s.Dirty() {
		t.Error("dirty cleared by a mutation")
	}

	s.MarkClean()
	if s.Dirty() {
		t.Error("MarkClean did not clear dirty")
	}
}

func TestStore_UnknownIDsAreNoOps(t *testing.T) {
	s := newTestStore(t)

	title := "x"
	if s.UpdateEvent("ghost", EventPatch{Title: &title}) {
		t.Error("UpdateEvent on unknown ID returned true")
	}
	if s.MoveEvent("ghost", "day-2", Append()) {
		t.Error("MoveEvent with unknown event returned true")
	}
	if s.MoveEvent("breakfast", "day-99", Append()) {
		t.Error("MoveEvent with unknown day returned true")
	}
	if s.RemoveEvent("ghost") {
		t.Error("RemoveEvent on unknown ID returned true")
	}
	if s.Unschedule("ghost") {
		t.Error("Unschedule on unknown ID returned true")
	}

	if s.Dirty() {
		t.Error("no-op mutations flipped the dirty flag")
	}
}

func TestStore_MoveEvent_ReanchorsDate(t *testing.T) {
	s := newTestStore(t)

	if !s.MoveEvent("breakfast", "day-3", Append()) {
		t.Fatal("MoveEvent failed")
	}

	e, ok := s.Event("breakfast")
	if !ok {
		t.Fatal("moved event vanished")
	}
	if got := s.DayOf("breakfast"); got != "day-3" {
		t.Errorf("DayOf = %q, want day-3", got)
	}
	if got := e.StartsAt.Format("2006-01-02 15:04"); got != "2024-06-03 08:00" {
		t.Errorf("StartsAt = %q, want 2024-06-03 08:00 (time-of-day preserved)", got)
	}
	if e.Duration() != 60 {
		t.Errorf("Duration = %d, want 60", e.Duration())
	}
	if got := e.EndsAt.Format("15:04"); got != "09:00" {
		t.Errorf("EndsAt clock = %q, want 09:00", got)
	}

	// Source day no longer holds it.
	for _, ev := range s.Days()[0].Events {
		if ev.ID == "breakfast" {
			t.Error("event still present on source day")
		}
	}
}

func TestStore_MoveEvent_SlotStartOverride(t *testing.T) {
	s := newTestStore(t)

	if !s.MoveEvent("museum", "day-2", MoveOptions{Position: -1, StartClock: "15:30"}) {
		t.Fatal("MoveEvent failed")
	}

	e, _ := s.Event("museum")
	if got := e.StartsAt.Format("2006-01-02 15:04"); got != "2024-06-02 15:30" {
		t.Errorf("StartsAt = %q, want 2024-06-02 15:30", got)
	}
}

func TestStore_MoveEvent_KeepsDaySorted(t *testing.T) {
	s := newTestStore(t)

	// Museum at 11:00 moves onto day 2 before the 10:00 market; sort
	// order must win over insert position.
	if !s.MoveEvent("museum", "day-2", MoveOptions{Position: 0}) {
		t.Fatal("MoveEvent failed")
	}

	day := s.Days()[1]
	if day.Events[0].ID != "market" || day.Events[1].ID != "museum" {
		t.Errorf("day 2 order = %s, %s; want market, museum", day.Events[0].ID, day.Events[1].ID)
	}
}

func TestStore_AddEvent_FromPool(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.Event("spare")
	if !s.AddEvent("day-1", e, MoveOptions{Position: -1, StartClock: "14:00"}) {
		t.Fatal("AddEvent failed")
	}

	if len(s.Unplaced()) != 0 {
		t.Error("pool still holds the added event")
	}
	got, _ := s.Event("spare")
	if got.StartsAt == nil || got.StartsAt.Format("15:04") != "14:00" {
		t.Errorf("added event start = %v, want 14:00", got.StartsAt)
	}
	if s.DayOf("spare") != "day-1" {
		t.Errorf("DayOf = %q, want day-1", s.DayOf("spare"))
	}
}

func TestStore_AddEvent_DefaultsToDayStart(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.Event("spare")
	if !s.AddEvent("day-2", e, Append()) {
		t.Fatal("AddEvent failed")
	}

	got, _ := s.Event("spare")
	if got.StartsAt == nil || got.StartsAt.Format("15:04") != "09:00" {
		t.Errorf("untimed event anchored at %v, want day start 09:00", got.StartsAt)
	}
}

func TestStore_PlaceFromPool(t *testing.T) {
	s := newTestStore(t)

	if !s.PlaceFromPool("spare", "day-2", MoveOptions{Position: -1, StartClock: "11:30"}) {
		t.Fatal("PlaceFromPool failed")
	}

	if got := s.DayOf("spare"); got != "day-2" {
		t.Errorf("DayOf = %q, want day-2", got)
	}
	if len(s.Unplaced()) != 0 {
		t.Error("pool still holds the placed event")
	}

	// Only pool events qualify.
	if s.PlaceFromPool("breakfast", "day-2", Append()) {
		t.Error("PlaceFromPool accepted a scheduled event")
	}
	if s.PlaceFromPool("ghost", "day-2", Append()) {
		t.Error("PlaceFromPool accepted an unknown event")
	}
}

func TestStore_AddEvent_NoDuplicateOnReAdd(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.Event("museum")
	if !s.AddEvent("day-2", e, Append()) {
		t.Fatal("AddEvent failed")
	}

	count := 0
	for _, d := range s.Days() {
		for _, ev := range d.Events {
			if ev.ID == "museum" {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("event appears %d times after re-add, want 1", count)
	}
}

func TestStore_Unschedule(t *testing.T) {
	s := newTestStore(t)

	if !s.Unschedule("museum") {
		t.Fatal("Unschedule failed")
	}

	e, ok := s.Event("museum")
	if !ok {
		t.Fatal("unscheduled event vanished")
	}
	if e.StartsAt != nil {
		t.Error("unscheduled event kept its start time")
	}
	if e.Duration() != 120 {
		t.Errorf("Duration = %d, want 120 preserved for later placement", e.Duration())
	}
	if s.DayOf("museum") != "" {
		t.Error("unscheduled event still assigned to a day")
	}

	found := false
	for _, p := range s.Unplaced() {
		if p.ID == "museum" {
			found = true
		}
	}
	if !found {
		t.Error("unscheduled event not in pool")
	}
}

func TestStore_UpdateEvent_ClockReanchoredToDayDate(t *testing.T) {
	s := newTestStore(t)

	clock := "16:45"
	if !s.UpdateEvent("market", EventPatch{StartClock: &clock}) {
		t.Fatal("UpdateEvent failed")
	}

	e, _ := s.Event("market")
	if got := e.StartsAt.Format("2006-01-02 15:04"); got != "2024-06-02 16:45" {
		t.Errorf("StartsAt = %q, want 2024-06-02 16:45", got)
	}
}

func TestStore_UpdateEvent_BadClockUsesSentinel(t *testing.T) {
	s := newTestStore(t)

	clock := "not a time"
	if !s.UpdateEvent("market", EventPatch{StartClock: &clock}) {
		t.Fatal("UpdateEvent failed")
	}

	e, _ := s.Event("market")
	if got := e.StartsAt.Format("15:04"); got != "09:00" {
		t.Errorf("StartsAt clock = %q, want 09:00 sentinel", got)
	}
}

func TestStore_PlanRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := s.Plan()
	if p == nil {
		t.Fatal("Plan() returned nil after seed")
	}
	if p.TripID != "trip-1" || p.DestinationSlug != "kyoto-japan" {
		t.Errorf("plan identity = %s/%s", p.TripID, p.DestinationSlug)
	}
	if len(p.Days) != 3 || len(p.Unplaced) != 1 {
		t.Errorf("plan shape = %d days, %d unplaced; want 3, 1", len(p.Days), len(p.Unplaced))
	}

	// Mutating the returned plan must not touch the store.
	p.Days[0].Events[0].Title = "changed"
	e, _ := s.Event("breakfast")
	if e.Title != "Breakfast" {
		t.Error("Plan() returned aliased state")
	}
}

func TestStore_PlanNilBeforeSeed(t *testing.T) {
	s := NewStore()
	if s.Plan() != nil {
		t.Error("Plan() before SetPlan should be nil")
	}
}

func TestStore_ReplacePlanLeavesDirty(t *testing.T) {
	s := newTestStore(t)

	s.ReplacePlan(testPlan())
	if !s.Dirty() {
		t.Error("ReplacePlan did not leave the store dirty")
	}
}

func TestStore_OnChangeFires(t *testing.T) {
	s := NewStore()
	calls := 0
	s.SetOnChange(func() { calls++ })

	s.SetPlan(testPlan())
	if calls != 1 {
		t.Fatalf("SetPlan fired %d notifications, want 1", calls)
	}

	s.Unschedule("museum")
	if calls != 2 {
		t.Errorf("mutation fired %d notifications, want 2", calls)
	}

	// No-ops stay silent.
	s.RemoveEvent("ghost")
	if calls != 2 {
		t.Errorf("no-op fired a notification")
	}
}

func TestStore_SnapshotsAreStable(t *testing.T) {
	s := newTestStore(t)

	before := s.Days()
	s.MoveEvent("breakfast", "day-2", Append())

	// The snapshot taken before the move still shows the old layout.
	if before[0].Events[0].ID != "breakfast" {
		t.Error("earlier snapshot mutated by MoveEvent")
	}
}
