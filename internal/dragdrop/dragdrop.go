// Package dragdrop models a drag gesture as a session that captures where
// an event came from and commits exactly one store mutation on drop. Any UI
// layer (pointer, touch, keyboard reordering) can drive the same contract.
package dragdrop

import (
	"tripgrid/internal/board"
	"tripgrid/internal/grid"
	"tripgrid/internal/trip"
)

// Origin identifies where a dragged event started.
type Origin struct {
	Pool  bool
	DayID string // set when the origin is a day
}

// TargetKind discriminates drop targets.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetTimeSlot
	TargetDayPosition
	TargetPool
)

// Target is a resolved drop destination.
type Target struct {
	Kind      TargetKind
	DayID     string
	SlotIndex int // for TargetTimeSlot
	Position  int // for TargetDayPosition; negative appends
}

// TimeSlot targets a specific slot on a day.
func TimeSlot(dayID string, slotIndex int) Target {
	return Target{Kind: TargetTimeSlot, DayID: dayID, SlotIndex: slotIndex}
}

// DayPosition targets an explicit index within a day's event list.
func DayPosition(dayID string, position int) Target {
	return Target{Kind: TargetDayPosition, DayID: dayID, Position: position}
}

// Pool targets the unplaced pool.
func Pool() Target {
	return Target{Kind: TargetPool}
}

// Session is one in-flight drag gesture. A session commits at most one
// mutation; after Drop it is spent.
type Session struct {
	Item   trip.Event
	Origin Origin
	spent  bool
}

// Active reports whether the session can still commit a drop.
func (s *Session) Active() bool {
	return s != nil && !s.spent
}

// Controller translates drag sessions into store mutations.
type Controller struct {
	store  *board.Store
	layout grid.Layout
}

// NewController creates a drag controller over the given store.
func NewController(store *board.Store, layout grid.Layout) *Controller {
	return &Controller{store: store, layout: layout}
}

// Start begins a drag session for the event with the given ID, capturing
// its origin. Returns false if the event is unknown.
func (c *Controller) Start(eventID string) (*Session, bool) {
	item, ok := c.store.Event(eventID)
	if !ok {
		return nil, false
	}
	origin := Origin{Pool: true}
	if dayID := c.store.DayOf(eventID); dayID != "" {
		origin = Origin{DayID: dayID}
	}
	return &Session{Item: item, Origin: origin}, true
}

// StartFromPayload begins a session from a serialized drag payload.
// Malformed payloads are silently ignored.
func (c *Controller) StartFromPayload(data []byte) (*Session, bool) {
	p, ok := DecodePayload(data)
	if !ok {
		return nil, false
	}
	return c.Start(p.EventID)
}

// Drop resolves the target and commits the single mutation for this
// session. A drop with no resolvable target is a complete no-op: the origin
// is untouched and the session stays unspent so the gesture can continue.
// Removal always precedes insertion inside the store, so moving within the
// same day never duplicates the event.
func (c *Controller) Drop(s *Session, target Target) bool {
	if !s.Active() {
		return false
	}

	switch target.Kind {
	case TargetPool:
		s.spent = true
		return c.store.Unschedule(s.Item.ID)

	case TargetTimeSlot:
		s.spent = true
		opt := board.MoveOptions{
			Position:   -1,
			StartClock: c.layout.SlotToTime(target.SlotIndex),
		}
		if s.Origin.Pool {
			return c.store.PlaceFromPool(s.Item.ID, target.DayID, opt)
		}
		return c.store.MoveEvent(s.Item.ID, target.DayID, opt)

	case TargetDayPosition:
		s.spent = true
		opt := board.MoveOptions{Position: target.Position}
		if s.Origin.Pool {
			return c.store.PlaceFromPool(s.Item.ID, target.DayID, opt)
		}
		return c.store.MoveEvent(s.Item.ID, target.DayID, opt)

	default:
		return false
	}
}
