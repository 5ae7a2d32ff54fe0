// Package board owns the editable in-memory plan: its days, the unplaced
// pool, and the dirty flag. The Store is the only writer of plan state;
// every mutator clones the day slice and replaces it wholesale, so snapshots
// handed out earlier are never mutated underneath their holders.
package board

import (
	"time"

	"tripgrid/internal/dateutil"
	"tripgrid/internal/grid"
	"tripgrid/internal/trip"
)

// planMeta is the plan-level state kept alongside the day array.
type planMeta struct {
	tripID          string
	destinationSlug string
	startDate       time.Time
	endDate         time.Time
	preferences     trip.Preferences
	generatedAt     time.Time
}

// Store is the scheduling state container.
type Store struct {
	meta     *planMeta
	days     []trip.Day
	unplaced []trip.Event
	dirty    bool
	onChange func()
}

// NewStore creates an empty store. No plan is seeded; Plan() returns nil
// until SetPlan is called.
func NewStore() *Store {
	return &Store{}
}

// SetOnChange registers a callback invoked after every successful mutation
// and after SetPlan. UI layers subscribe here; the store stays free of any
// rendering dependency.
func (s *Store) SetOnChange(fn func()) {
	s.onChange = fn
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Dirty reports whether the plan has unsaved mutations.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag. Call only after a save has been
// confirmed.
func (s *Store) MarkClean() {
	s.dirty = false
}

// SetPlan replaces all store state from a freshly loaded plan and clears
// the dirty flag. The plan is deep-copied so later edits never alias the
// caller's value.
func (s *Store) SetPlan(p *trip.Plan) {
	s.setPlan(p, false)
}

// ReplacePlan swaps in a newly generated plan. Identical to SetPlan
// except the store is left dirty, since the new content has not been
// saved anywhere yet.
func (s *Store) ReplacePlan(p *trip.Plan) {
	s.setPlan(p, true)
}

func (s *Store) setPlan(p *trip.Plan, dirty bool) {
	if p == nil {
		return
	}
	cp := p.Clone()
	s.meta = &planMeta{
		tripID:          cp.TripID,
		destinationSlug: cp.DestinationSlug,
		startDate:       cp.StartDate,
		endDate:         cp.EndDate,
		preferences:     cp.Preferences,
		generatedAt:     cp.GeneratedAt,
	}
	s.days = cp.Days
	for i := range s.days {
		s.days[i].Sort()
	}
	s.unplaced = cp.Unplaced
	s.dirty = dirty
	s.notify()
}

// Days returns the current day snapshot. The slice header is copied;
// mutators never edit the underlying arrays in place, so the snapshot is
// stable for callers.
func (s *Store) Days() []trip.Day {
	out := make([]trip.Day, len(s.days))
	copy(out, s.days)
	return out
}

// Unplaced returns the current pool snapshot.
func (s *Store) Unplaced() []trip.Event {
	out := make([]trip.Event, len(s.unplaced))
	copy(out, s.unplaced)
	return out
}

// Preferences returns the seeded pacing preferences, or defaults before any
// plan has been seeded.
func (s *Store) Preferences() trip.Preferences {
	if s.meta == nil {
		return trip.DefaultPreferences()
	}
	return s.meta.preferences
}

// Plan serializes the current state back into a plan value for the save
// round trip. Returns nil if no plan has been seeded yet.
func (s *Store) Plan() *trip.Plan {
	if s.meta == nil {
		return nil
	}
	p := &trip.Plan{
		TripID:          s.meta.tripID,
		DestinationSlug: s.meta.destinationSlug,
		StartDate:       s.meta.startDate,
		EndDate:         s.meta.endDate,
		Days:            s.days,
		Unplaced:        s.unplaced,
		Preferences:     s.meta.preferences,
		GeneratedAt:     s.meta.generatedAt,
	}
	return p.Clone()
}

// EventPatch carries the fields of a partial event update. Nil fields are
// left untouched. Clock fields take a bare "HH:MM" time-of-day that is
// re-anchored onto the owning day's date before merge; unparsable clocks
// fall back to the 09:00 sentinel.
type EventPatch struct {
	Title           *string
	Description     *string
	Notes           *string
	StartsAt        *time.Time
	EndsAt          *time.Time
	StartClock      *string
	EndClock        *string
	DurationMinutes *int
	Metadata        *trip.Metadata
	Availability    *trip.Availability
	ClearTimes      bool
}

// UpdateEvent merges the patch into the event with the given ID, re-anchors
// any supplied times onto the owning day's date, and re-sorts that day.
// Unknown IDs are a silent no-op and do not flip the dirty flag.
func (s *Store) UpdateEvent(eventID string, patch EventPatch) bool {
	di, ei := s.findEvent(eventID)
	if di < 0 {
		return false
	}

	days := s.cloneDays()
	day := &days[di]
	e := &day.Events[ei]

	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if patch.DurationMinutes != nil {
		e.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Metadata != nil {
		e.Metadata = patch.Metadata.Clone()
	}
	if patch.Availability != nil {
		a := *patch.Availability
		e.Availability = &a
	}
	if patch.ClearTimes {
		e.ClearTimes()
	}
	if patch.StartsAt != nil {
		t := *patch.StartsAt
		e.StartsAt = &t
	}
	if patch.StartClock != nil {
		t := clockOnDate(day.Date, *patch.StartClock)
		e.StartsAt = &t
	}
	if patch.EndsAt != nil {
		t := *patch.EndsAt
		e.EndsAt = &t
	}
	if patch.EndClock != nil {
		t := clockOnDate(day.Date, *patch.EndClock)
		e.EndsAt = &t
	}

	// Whatever the patch supplied, times always end up on the owning
	// day's date.
	e.AnchorTo(day.Date)
	day.Sort()

	s.days = days
	s.dirty = true
	s.notify()
	return true
}

// MoveOptions controls placement during MoveEvent and AddEvent.
type MoveOptions struct {
	// Position is the insert index within the target day, clamped to
	// [0, len]. Negative appends.
	Position int
	// StartClock, when non-empty, overrides the event's time-of-day with
	// a slot-derived start before re-anchoring.
	StartClock string
}

// Append returns options that append without touching the start time.
func Append() MoveOptions {
	return MoveOptions{Position: -1}
}

// MoveEvent removes the event from its current day and inserts it into the
// target day, re-anchoring its times onto the target date while preserving
// time-of-day (the end time is recomputed from the duration when one
// exists). A move with an unresolvable source or target is a silent no-op.
func (s *Store) MoveEvent(eventID, targetDayID string, opt MoveOptions) bool {
	di, ei := s.findEvent(eventID)
	if di < 0 {
		return false
	}
	if s.dayIndex(targetDayID) < 0 {
		return false
	}

	days := s.cloneDays()
	e := days[di].Events[ei]
	days[di].Events = append(days[di].Events[:ei], days[di].Events[ei+1:]...)

	ti := s.dayIndex(targetDayID)
	target := &days[ti]
	if opt.StartClock != "" {
		t := clockOnDate(target.Date, opt.StartClock)
		e.StartsAt = &t
	}
	e.AnchorTo(target.Date)
	insertEvent(target, e, opt.Position)

	s.days = days
	s.dirty = true
	s.notify()
	return true
}

// AddEvent inserts a new event into a day, typically one dragged from the
// unplaced pool. Any prior instance of the event (pool or day) is removed
// first, so re-adding is safe. Events without a start time are anchored at
// the configured day-start hour.
func (s *Store) AddEvent(dayID string, e trip.Event, opt MoveOptions) bool {
	ti := s.dayIndex(dayID)
	if ti < 0 {
		return false
	}

	days := s.cloneDays()
	removeFromDays(days, e.ID)
	pool := s.clonePoolWithout(e.ID)

	target := &days[ti]
	e = e.Clone()
	if opt.StartClock != "" {
		t := clockOnDate(target.Date, opt.StartClock)
		e.StartsAt = &t
	}
	if e.StartsAt == nil {
		t := clockOnDate(target.Date, s.Preferences().DayStart)
		e.StartsAt = &t
	}
	e.AnchorTo(target.Date)
	insertEvent(target, e, opt.Position)

	s.days = days
	s.unplaced = pool
	s.dirty = true
	s.notify()
	return true
}

// PlaceFromPool schedules a pool event onto a day. Returns false when the
// event is not in the pool or the day is unknown.
func (s *Store) PlaceFromPool(eventID, dayID string, opt MoveOptions) bool {
	pi := s.poolIndex(eventID)
	if pi < 0 {
		return false
	}
	return s.AddEvent(dayID, s.unplaced[pi].Clone(), opt)
}

// RemoveEvent deletes the event from whichever day holds it, or from the
// pool. Dirty flips only when something was actually removed.
func (s *Store) RemoveEvent(eventID string) bool {
	di, ei := s.findEvent(eventID)
	if di >= 0 {
		days := s.cloneDays()
		days[di].Events = append(days[di].Events[:ei], days[di].Events[ei+1:]...)
		s.days = days
		s.dirty = true
		s.notify()
		return true
	}
	if s.poolIndex(eventID) >= 0 {
		s.unplaced = s.clonePoolWithout(eventID)
		s.dirty = true
		s.notify()
		return true
	}
	return false
}

// Unschedule moves a scheduled event back into the unplaced pool with its
// time-of-day cleared. Unscheduling a pool event just clears its times.
func (s *Store) Unschedule(eventID string) bool {
	di, ei := s.findEvent(eventID)
	if di >= 0 {
		days := s.cloneDays()
		e := days[di].Events[ei]
		days[di].Events = append(days[di].Events[:ei], days[di].Events[ei+1:]...)
		e.ClearTimes()

		pool := s.clonePoolWithout(e.ID)
		pool = append(pool, e)

		s.days = days
		s.unplaced = pool
		s.dirty = true
		s.notify()
		return true
	}
	if pi := s.poolIndex(eventID); pi >= 0 {
		pool := s.clonePool()
		pool[pi].ClearTimes()
		s.unplaced = pool
		s.dirty = true
		s.notify()
		return true
	}
	return false
}

// Event returns a copy of the event with the given ID, searching days first
// and then the pool.
func (s *Store) Event(eventID string) (trip.Event, bool) {
	if di, ei := s.findEvent(eventID); di >= 0 {
		return s.days[di].Events[ei].Clone(), true
	}
	if pi := s.poolIndex(eventID); pi >= 0 {
		return s.unplaced[pi].Clone(), true
	}
	return trip.Event{}, false
}

// DayOf returns the ID of the day holding the event, or "" if the event is
// in the pool or unknown.
func (s *Store) DayOf(eventID string) string {
	if di, _ := s.findEvent(eventID); di >= 0 {
		return s.days[di].ID
	}
	return ""
}

func (s *Store) findEvent(eventID string) (dayIdx, eventIdx int) {
	for di := range s.days {
		if ei := s.days[di].FindEvent(eventID); ei >= 0 {
			return di, ei
		}
	}
	return -1, -1
}

func (s *Store) dayIndex(dayID string) int {
	for i := range s.days {
		if s.days[i].ID == dayID {
			return i
		}
	}
	return -1
}

func (s *Store) poolIndex(eventID string) int {
	for i := range s.unplaced {
		if s.unplaced[i].ID == eventID {
			return i
		}
	}
	return -1
}

func (s *Store) cloneDays() []trip.Day {
	out := make([]trip.Day, len(s.days))
	for i := range s.days {
		out[i] = s.days[i].Clone()
	}
	return out
}

func (s *Store) clonePool() []trip.Event {
	out := make([]trip.Event, len(s.unplaced))
	for i := range s.unplaced {
		out[i] = s.unplaced[i].Clone()
	}
	return out
}

func (s *Store) clonePoolWithout(eventID string) []trip.Event {
	out := make([]trip.Event, 0, len(s.unplaced))
	for i := range s.unplaced {
		if s.unplaced[i].ID == eventID {
			continue
		}
		out = append(out, s.unplaced[i].Clone())
	}
	return out
}

// removeFromDays deletes any instance of the event from the cloned days.
func removeFromDays(days []trip.Day, eventID string) {
	for di := range days {
		if ei := days[di].FindEvent(eventID); ei >= 0 {
			days[di].Events = append(days[di].Events[:ei], days[di].Events[ei+1:]...)
			return
		}
	}
}

// insertEvent inserts e at the clamped position and restores sort order.
func insertEvent(d *trip.Day, e trip.Event, position int) {
	if position < 0 || position > len(d.Events) {
		d.Events = append(d.Events, e)
	} else {
		d.Events = append(d.Events[:position],
			append([]trip.Event{e}, d.Events[position:]...)...)
	}
	d.Sort()
}

// clockOnDate combines a calendar date with a "HH:MM" time-of-day, using
// the 09:00 sentinel for unparsable clocks.
func clockOnDate(date time.Time, clock string) time.Time {
	mins := grid.TimeToMinutes(clock)
	day := dateutil.TruncateToDay(date)
	return day.Add(time.Duration(mins) * time.Minute)
}
