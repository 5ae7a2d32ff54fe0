package trip

import (
	"errors"
	"time"

	"tripgrid/internal/dateutil"
)

// Domain errors.
var (
	ErrDaysNotContiguous = errors.New("plan days must cover the date range contiguously")
	ErrDayIndexMismatch  = errors.New("day index must match its position")
)

// Preferences holds the user's pacing choices for a trip.
type Preferences struct {
	DayStart        string // "HH:MM"
	DayEnd          string // "HH:MM"
	BreakMinutes    int
	MaxEventsPerDay int
	Pace            string // "relaxed", "balanced", "packed"
	PartySize       int
}

// DefaultPreferences returns sensible pacing defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		DayStart:        "09:00",
		DayEnd:          "21:00",
		BreakMinutes:    30,
		MaxEventsPerDay: 6,
		Pace:            "balanced",
		PartySize:       2,
	}
}

// Plan is the root aggregate for one trip: its days, the pool of unplaced
// candidate events, and pacing preferences.
type Plan struct {
	TripID          string
	DestinationSlug string
	StartDate       time.Time
	EndDate         time.Time
	Days            []Day
	Unplaced        []Event
	Preferences     Preferences
	GeneratedAt     time.Time
}

// Empty creates a plan with one empty day per calendar date from start to
// end inclusive. An invalid or missing range still yields a single day so
// the grid is always renderable.
func Empty(tripID, destinationSlug string, start, end time.Time) *Plan {
	if start.IsZero() {
		start = time.Now()
	}
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	if end.Before(start) {
		end = start
	}

	p := &Plan{
		TripID:          tripID,
		DestinationSlug: destinationSlug,
		StartDate:       start,
		EndDate:         end,
		Preferences:     DefaultPreferences(),
	}
	for d, i := start, 1; !d.After(end); d, i = d.AddDate(0, 0, 1), i+1 {
		p.Days = append(p.Days, NewDay(d, i))
	}
	return p
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	out := *p
	out.Days = make([]Day, len(p.Days))
	for i := range p.Days {
		out.Days[i] = p.Days[i].Clone()
	}
	out.Unplaced = make([]Event, len(p.Unplaced))
	for i := range p.Unplaced {
		out.Unplaced[i] = p.Unplaced[i].Clone()
	}
	return &out
}

// Day returns a pointer to the day with the given ID, or nil.
func (p *Plan) Day(id string) *Day {
	for i := range p.Days {
		if p.Days[i].ID == id {
			return &p.Days[i]
		}
	}
	return nil
}

// FindEvent locates an event across all days. Returns the day index and
// event index, or (-1, -1) if not found.
func (p *Plan) FindEvent(id string) (dayIdx, eventIdx int) {
	for di := range p.Days {
		if ei := p.Days[di].FindEvent(id); ei >= 0 {
			return di, ei
		}
	}
	return -1, -1
}

// Validate checks the plan's structural invariants: one day per calendar
// date from StartDate to EndDate inclusive, with 1-based indices matching
// sequence position.
func (p *Plan) Validate() error {
	want := dateutil.TruncateToDay(p.StartDate)
	for i := range p.Days {
		d := &p.Days[i]
		if d.Index != i+1 {
			return ErrDayIndexMismatch
		}
		if !dateutil.TruncateToDay(d.Date).Equal(want) {
			return ErrDaysNotContiguous
		}
		want = want.AddDate(0, 0, 1)
	}
	if !want.After(dateutil.TruncateToDay(p.EndDate)) {
		return ErrDaysNotContiguous
	}
	return nil
}
