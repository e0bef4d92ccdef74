package event

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var removeDay string

var removeCmd = &cobra.Command{
	Use:     "remove [id]",
	Short:   "Remove a calendar event",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EventService == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q: %w", args[0], err)
		}

		day := time.Now().UTC()
		if removeDay != "" {
			parsed, err := time.Parse("2006-01-02", removeDay)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
			day = parsed
		}

		ctx := cmd.Context()
		if err := app.EventService.RemoveEvent(ctx, id, day); err != nil {
			return fmt.Errorf("failed to remove event: %w", err)
		}

		fmt.Printf("Removed: %s\n", args[0])
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVarP(&removeDay, "day", "d", "", "date the event was on (YYYY-MM-DD, defaults to today)")
}
