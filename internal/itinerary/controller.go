// Package itinerary provides high-level plan lifecycle orchestration.
// It coordinates the generator, the repository, and the in-memory board
// so the CLI and the TUI load, generate, and save plans the same way.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripgrid/internal/board"
	"tripgrid/internal/llm"
	"tripgrid/internal/trip"
)

// ErrNoPlan is returned when an operation needs a loaded plan and none
// has been seeded into the board yet.
var ErrNoPlan = errors.New("no plan loaded")

// ErrNoGenerator is returned when Generate is called without a
// configured generator.
var ErrNoGenerator = errors.New("no generator configured")

// Repository persists plans. Implemented by the SQLite store.
type Repository interface {
	SavePlan(ctx context.Context, p *trip.Plan) error
	LoadPlan(ctx context.Context, tripID string) (*trip.Plan, error)
}

// Generator produces a full plan for a destination and date range.
// Implemented by the LLM generator.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (*trip.Plan, error)
}

// TripSpec identifies the trip being planned.
type TripSpec struct {
	TripID          string
	DestinationSlug string
	StartDate       time.Time
	EndDate         time.Time
	Preferences     trip.Preferences
}

// Controller drives the plan lifecycle against a board store. The
// repository and generator are both optional; a nil repository makes
// Load synthesize an empty plan and Save a no-op failure, a nil
// generator disables Generate.
type Controller struct {
	store *board.Store
	gen   Generator
	repo  Repository
	spec  TripSpec
}

// New creates a Controller for the given trip.
func New(store *board.Store, gen Generator, repo Repository, spec TripSpec) *Controller {
	if spec.Preferences.DayStart == "" {
		spec.Preferences = trip.DefaultPreferences()
	}
	return &Controller{
		store: store,
		gen:   gen,
		repo:  repo,
		spec:  spec,
	}
}

// Store exposes the underlying board store.
func (c *Controller) Store() *board.Store {
	return c.store
}

// Trip returns the trip identity this controller manages.
func (c *Controller) Trip() TripSpec {
	return c.spec
}

// SetDestination changes the destination used for later generation. It
// does not touch the current board content.
func (c *Controller) SetDestination(slug string) {
	c.spec.DestinationSlug = slug
}

// Load seeds the board from the repository, or with an empty plan
// covering the trip's date range when nothing is stored. Loading leaves
// the board clean.
func (c *Controller) Load(ctx context.Context) error {
	if c.repo != nil {
		p, err := c.repo.LoadPlan(ctx, c.spec.TripID)
		if err != nil {
			return fmt.Errorf("loading plan: %w", err)
		}
		if p != nil {
			c.store.SetPlan(p)
			return nil
		}
	}

	p := trip.Empty(c.spec.TripID, c.spec.DestinationSlug, c.spec.StartDate, c.spec.EndDate)
	p.Preferences = c.spec.Preferences
	c.store.SetPlan(p)
	return nil
}

// Generate replaces the board content wholesale with a freshly generated
// plan. The board is left dirty; the previous content is gone whether or
// not the new plan is ever saved.
func (c *Controller) Generate(ctx context.Context) (*trip.Plan, error) {
	if c.gen == nil {
		return nil, ErrNoGenerator
	}

	p, err := c.gen.Generate(ctx, llm.GenerateRequest{
		TripID:          c.spec.TripID,
		DestinationSlug: c.spec.DestinationSlug,
		StartDate:       c.spec.StartDate,
		EndDate:         c.spec.EndDate,
		Preferences:     c.spec.Preferences,
	})
	if err != nil {
		return nil, err
	}

	c.store.ReplacePlan(p)
	return p, nil
}

// Preview generates a plan without touching the board. Used for dry
// runs.
func (c *Controller) Preview(ctx context.Context) (*trip.Plan, error) {
	if c.gen == nil {
		return nil, ErrNoGenerator
	}
	return c.gen.Generate(ctx, llm.GenerateRequest{
		TripID:          c.spec.TripID,
		DestinationSlug: c.spec.DestinationSlug,
		StartDate:       c.spec.StartDate,
		EndDate:         c.spec.EndDate,
		Preferences:     c.spec.Preferences,
	})
}

// Save persists the current board content. The dirty flag is cleared
// only after the repository confirms the write, so a failed save keeps
// the unsaved-changes indicator honest.
func (c *Controller) Save(ctx context.Context) error {
	p := c.store.Plan()
	if p == nil {
		return ErrNoPlan
	}
	if c.repo == nil {
		return errors.New("no repository configured")
	}

	if err := c.repo.SavePlan(ctx, p); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	c.store.MarkClean()
	return nil
}
