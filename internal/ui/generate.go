package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tripgrid/internal/grid"
	"tripgrid/internal/itinerary"
)

func (a *App) generateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an itinerary for a destination",
		Long: `Ask the configured LLM provider for a draft itinerary covering the
trip's date range, then save it. With --dry-run the draft is printed and
discarded instead.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.destination == "" {
				return errors.New("--destination is required")
			}

			ctrl, err := a.buildController(true)
			if err != nil {
				return err
			}

			ctx := context.Background()
			layout := grid.NewLayout(a.config.Trip.SlotMinutes)

			if dryRun {
				p, err := ctrl.Preview(ctx)
				if err != nil {
					return fmt.Errorf("generating itinerary: %w", err)
				}
				printPlan(p, layout)
				fmt.Println(formatMuted("Dry run; nothing saved."))
				return nil
			}

			if _, err := ctrl.Generate(ctx); err != nil {
				if errors.Is(err, itinerary.ErrNoGenerator) {
					return errors.New("no LLM provider available; check provider config and API key")
				}
				return fmt.Errorf("generating itinerary: %w", err)
			}
			if err := ctrl.Save(ctx); err != nil {
				return err
			}

			p := ctrl.Store().Plan()
			printPlan(p, layout)
			fmt.Println(formatStats("Saved."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the generated plan without saving")
	return cmd
}
