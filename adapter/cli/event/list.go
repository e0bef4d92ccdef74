package event

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/spf13/cobra"
)

var listDay string

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List a day's calendar events",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EventService == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		day := time.Now().UTC()
		if listDay != "" {
			parsed, err := time.Parse("2006-01-02", listDay)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
			day = parsed
		}

		ctx := cmd.Context()
		events, err := app.EventService.EventsForDay(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Printf("No events on %s.\n", day.Format("2006-01-02"))
			return nil
		}

		fmt.Printf("Events on %s (%d):\n", day.Format("2006-01-02"), len(events))
		for _, e := range events {
			fmt.Printf("  %s-%s  %s", e.Start().Format("15:04"), e.End().Format("15:04"), e.Title())
			if e.Location() != "" {
				fmt.Printf("  (%s)", e.Location())
			}
			fmt.Println()
			fmt.Printf("    ID: %s\n", e.ID().String()[:8])
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listDay, "day", "d", "", "date to list (YYYY-MM-DD, defaults to today)")
}
