// Package ui provides the cobra command-line interface for tripgrid.
package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tripgrid/internal/board"
	"tripgrid/internal/config"
	"tripgrid/internal/dateutil"
	"tripgrid/internal/db"
	"tripgrid/internal/itinerary"
	"tripgrid/internal/llm"
	"tripgrid/internal/trip"
	"tripgrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	store  *db.SQLite // opened lazily

	// Root flags
	tripID      string
	destination string
	startDate   string
	endDate     string
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "tripgrid",
		Short: "A terminal trip planner with a drag-and-drop day grid",
		Long: `Tripgrid lays a trip out as a time-sliced grid, one column per day.

Generate a draft itinerary for a destination, then rearrange events on
the grid, park spares in the unplaced pool, and save when it looks right.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctrl, err := a.buildController(true)
			if err != nil {
				return err
			}
			return tui.Run(ctrl, a.config)
		},
	}

	a.root.PersistentFlags().StringVar(&a.tripID, "trip", "trip", "Trip identifier")
	a.root.PersistentFlags().StringVar(&a.destination, "destination", "", "Destination slug, e.g. kyoto-japan")
	a.root.PersistentFlags().StringVar(&a.startDate, "start", "", "Trip start date (YYYY-MM-DD, default today)")
	a.root.PersistentFlags().StringVar(&a.endDate, "end", "", "Trip end date (YYYY-MM-DD, default start+4 days)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.generateCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.poolCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.deleteCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tripgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if one was opened.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// openStore opens the SQLite store on first use.
func (a *App) openStore() (*db.SQLite, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.store = s
	return s, nil
}

// tripSpec resolves the trip identity from the root flags and config
// defaults.
func (a *App) tripSpec() (itinerary.TripSpec, error) {
	start, err := dateutil.ParseDate(a.startDate)
	if err != nil {
		return itinerary.TripSpec{}, fmt.Errorf("parsing start date: %w", err)
	}

	end := start.AddDate(0, 0, 4)
	if a.endDate != "" {
		end, err = dateutil.ParseDate(a.endDate)
		if err != nil {
			return itinerary.TripSpec{}, fmt.Errorf("parsing end date: %w", err)
		}
	}
	if end.Before(start) {
		return itinerary.TripSpec{}, dateutil.ErrEndDateBeforeStart
	}

	return itinerary.TripSpec{
		TripID:          a.tripID,
		DestinationSlug: strings.TrimSpace(a.destination),
		StartDate:       start,
		EndDate:         end,
		Preferences:     a.preferences(),
	}, nil
}

// preferences maps the config trip section onto plan preferences.
func (a *App) preferences() trip.Preferences {
	return trip.Preferences{
		DayStart:        a.config.Trip.DayStart,
		DayEnd:          a.config.Trip.DayEnd,
		BreakMinutes:    a.config.Trip.BreakMinutes,
		MaxEventsPerDay: a.config.Trip.MaxEventsPerDay,
		Pace:            a.config.Trip.Pace,
		PartySize:       a.config.Trip.PartySize,
	}
}

// buildController wires the board, generator, and repository together.
// The generator is optional; withGenerator=false skips LLM client setup
// for commands that never generate.
func (a *App) buildController(withGenerator bool) (*itinerary.Controller, error) {
	spec, err := a.tripSpec()
	if err != nil {
		return nil, err
	}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	var gen itinerary.Generator
	if withGenerator {
		client, err := llm.NewClient(a.config.Generator.Provider, a.config.Generator.Model, a.config.Generator.BaseURL)
		if err == nil {
			gen = llm.NewGenerator(client)
		}
		// A missing API key only disables generation; the grid still works.
	}

	return itinerary.New(board.NewStore(), gen, store, spec), nil
}
