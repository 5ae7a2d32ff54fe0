package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored plans",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			summaries, err := store.ListPlans(context.Background())
			if err != nil {
				return fmt.Errorf("listing plans: %w", err)
			}

			if len(summaries) == 0 {
				fmt.Println("No plans stored.")
				return nil
			}

			for _, s := range summaries {
				fmt.Printf("%s  %s  %s - %s  %s\n",
					formatHeader(s.TripID),
					s.DestinationSlug,
					s.StartDate.Format("2006-01-02"),
					s.EndDate.Format("2006-01-02"),
					formatMuted(fmt.Sprintf("%d events", s.EventCount)))
			}
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			if err := store.DeletePlan(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting plan: %w", err)
			}
			fmt.Printf("Deleted plan %q.\n", args[0])
			return nil
		},
	}
}
