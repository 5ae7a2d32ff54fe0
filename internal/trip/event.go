// Package trip defines the core domain types for tripgrid.
package trip

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidCategory = errors.New("unknown event category")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
)

// Category classifies an event. Each category carries its own typed
// payload on Metadata; the category tag says which payload is meaningful.
type Category string

const (
	CategoryActivity  Category = "activity"
	CategoryDining    Category = "dining"
	CategoryLodging   Category = "lodging"
	CategoryLogistics Category = "logistics"
	CategoryTransit   Category = "transit"
)

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryActivity, CategoryDining, CategoryLodging, CategoryLogistics, CategoryTransit:
		return true
	default:
		return false
	}
}

// Location is a geographic point with an optional address.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// AttractionMeta is the payload for activity events sourced from a
// destination catalog.
type AttractionMeta struct {
	AttractionID string
	Tags         []string
}

// DiningMeta is the payload for dining events.
type DiningMeta struct {
	Cuisine     string
	Reservation bool
}

// LodgingMeta is the payload for lodging events.
type LodgingMeta struct {
	CheckIn  string // "HH:MM"
	CheckOut string // "HH:MM"
	Nights   int
}

// LogisticsMeta is the payload for logistics events (packing, check-in,
// luggage drop and similar).
type LogisticsMeta struct {
	Kind string
}

// TransitMeta is the payload for transit legs between two attractions.
type TransitMeta struct {
	Mode   string // "walk", "taxi", "train", ...
	FromID string
	ToID   string
}

// Metadata is the tagged per-event payload. Exactly one variant pointer is
// expected to be set, matching Category; Location may accompany any variant.
type Metadata struct {
	Category   Category
	Attraction *AttractionMeta
	Dining     *DiningMeta
	Lodging    *LodgingMeta
	Logistics  *LogisticsMeta
	Transit    *TransitMeta
	Location   *Location
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Attraction != nil {
		a := *m.Attraction
		a.Tags = append([]string(nil), m.Attraction.Tags...)
		out.Attraction = &a
	}
	if m.Dining != nil {
		d := *m.Dining
		out.Dining = &d
	}
	if m.Lodging != nil {
		l := *m.Lodging
		out.Lodging = &l
	}
	if m.Logistics != nil {
		l := *m.Logistics
		out.Logistics = &l
	}
	if m.Transit != nil {
		t := *m.Transit
		out.Transit = &t
	}
	if m.Location != nil {
		loc := *m.Location
		out.Location = &loc
	}
	return out
}

// Availability is a snapshot of an external confirmation check.
type Availability struct {
	Confirmed bool
	Source    string
	CheckedAt time.Time
}

// Event is a scheduled or unscheduled activity within a plan.
// StartsAt and EndsAt, when set, are anchored to the owning day's date.
// A nil StartsAt means the event has no time yet (pool or untimed).
type Event struct {
	ID              string
	Title           string
	Description     string
	Notes           string
	StartsAt        *time.Time
	EndsAt          *time.Time
	DurationMinutes int
	Metadata        Metadata
	Availability    *Availability
}

// NewEvent creates an event with a fresh ID.
func NewEvent(title string, category Category) (*Event, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return &Event{
		ID:       uuid.NewString(),
		Title:    title,
		Metadata: Metadata{Category: category},
	}, nil
}

// Scheduled returns true if the event has a start time.
func (e *Event) Scheduled() bool {
	return e.StartsAt != nil
}

// Duration returns the event duration in minutes. An explicit
// DurationMinutes wins; otherwise it is derived from StartsAt/EndsAt.
func (e *Event) Duration() int {
	if e.DurationMinutes > 0 {
		return e.DurationMinutes
	}
	if e.StartsAt != nil && e.EndsAt != nil && e.EndsAt.After(*e.StartsAt) {
		return int(e.EndsAt.Sub(*e.StartsAt).Minutes())
	}
	return 0
}

// StartClock returns the start time-of-day as "HH:MM", or "" if unscheduled.
func (e *Event) StartClock() string {
	if e.StartsAt == nil {
		return ""
	}
	return e.StartsAt.Format("15:04")
}

// EndClock returns the end time-of-day as "HH:MM", or "" if unset.
func (e *Event) EndClock() string {
	if e.EndsAt == nil {
		return ""
	}
	return e.EndsAt.Format("15:04")
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	out := e
	if e.StartsAt != nil {
		t := *e.StartsAt
		out.StartsAt = &t
	}
	if e.EndsAt != nil {
		t := *e.EndsAt
		out.EndsAt = &t
	}
	out.Metadata = e.Metadata.Clone()
	if e.Availability != nil {
		a := *e.Availability
		out.Availability = &a
	}
	return out
}

// AnchorTo rewrites the event's date component onto date, preserving
// time-of-day. EndsAt is recomputed from the duration when one exists,
// otherwise re-anchored the same way.
func (e *Event) AnchorTo(date time.Time) {
	if e.StartsAt == nil {
		return
	}
	start := anchorClock(date, *e.StartsAt)
	e.StartsAt = &start

	if d := e.Duration(); d > 0 {
		end := start.Add(time.Duration(d) * time.Minute)
		e.EndsAt = &end
		return
	}
	if e.EndsAt != nil {
		end := anchorClock(date, *e.EndsAt)
		e.EndsAt = &end
	}
}

// ClearTimes drops the event's scheduled times, keeping its duration so a
// later placement can restore a sensible end time.
func (e *Event) ClearTimes() {
	if e.DurationMinutes == 0 {
		e.DurationMinutes = e.Duration()
	}
	e.StartsAt = nil
	e.EndsAt = nil
}

// anchorClock combines date's calendar day with t's time-of-day.
func anchorClock(date, t time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
}
