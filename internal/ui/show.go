package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"tripgrid/internal/grid"
	"tripgrid/internal/trip"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored plan day by day",
		Long: `Display the saved plan for a trip as a day-by-day listing with travel
gaps between scheduled events. Use the root command for the interactive
grid.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			p, err := store.LoadPlan(context.Background(), a.tripID)
			if err != nil {
				return fmt.Errorf("loading plan: %w", err)
			}
			if p == nil {
				fmt.Printf("No plan stored for trip %q.\n", a.tripID)
				return nil
			}

			printPlan(p, grid.NewLayout(a.config.Trip.SlotMinutes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) poolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool",
		Short: "List the unplaced events waiting for a slot",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			p, err := store.LoadPlan(context.Background(), a.tripID)
			if err != nil {
				return fmt.Errorf("loading plan: %w", err)
			}
			if p == nil {
				fmt.Printf("No plan stored for trip %q.\n", a.tripID)
				return nil
			}
			if len(p.Unplaced) == 0 {
				fmt.Println("Nothing in the pool.")
				return nil
			}

			for _, e := range p.Unplaced {
				fmt.Printf("  %s %s\n",
					formatCategory(e.Metadata.Category, e.Title),
					formatMuted(fmt.Sprintf("(%s)", formatMinutes(e.Duration()))))
			}
			return nil
		},
	}
}

// printPlan writes a plan as a day-by-day listing.
func printPlan(p *trip.Plan, layout grid.Layout) {
	fmt.Printf("%s  %s - %s\n\n",
		formatHeader(p.DestinationSlug),
		p.StartDate.Format("Mon Jan 2"),
		p.EndDate.Format("Mon Jan 2"))

	maxTitle := termWidth() - 30
	if maxTitle < 20 {
		maxTitle = 20
	}

	for _, day := range p.Days {
		fmt.Printf("%s %s\n", formatHeader(day.Label), formatMuted(day.Date.Format("Monday, January 2")))

		connectors := layout.Connectors(day.Events)
		gapAfter := make(map[string]grid.Connector, len(connectors))
		for _, c := range connectors {
			gapAfter[c.FromID] = c
		}

		if len(day.Events) == 0 {
			fmt.Println("  (empty)")
		}
		for _, e := range day.Events {
			clock := "     "
			if e.Scheduled() {
				clock = e.StartClock()
			}
			title := truncateTitle(e.Title, maxTitle)
			fmt.Printf("  %s  %s %s\n",
				formatMuted(clock),
				formatCategory(e.Metadata.Category, title),
				formatMuted(fmt.Sprintf("(%s)", formatMinutes(e.Duration()))))

			if c, ok := gapAfter[e.ID]; ok {
				label := fmt.Sprintf("%s free", formatMinutes(c.GapMinutes))
				if c.Tight {
					label += " (tight)"
				}
				fmt.Printf("         %s\n", formatGap("┊ "+label))
			}
		}

		stats := day.Stats()
		fmt.Printf("  %s\n\n", formatStats(fmt.Sprintf("%d events, %s busy",
			stats.TotalEvents, formatMinutes(stats.BusyMinutes))))
	}

	if len(p.Unplaced) > 0 {
		fmt.Printf("%s\n", formatHeader(fmt.Sprintf("Unplaced (%d)", len(p.Unplaced))))
		for _, e := range p.Unplaced {
			fmt.Printf("  %s %s\n",
				formatCategory(e.Metadata.Category, e.Title),
				formatMuted(fmt.Sprintf("(%s)", formatMinutes(e.Duration()))))
		}
	}
}

// truncateTitle shortens a title to max cells without splitting runes.
func truncateTitle(title string, max int) string {
	return ansi.Truncate(title, max, "…")
}

// formatMinutes renders a duration in minutes as "1h30m".
func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
