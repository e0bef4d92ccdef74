package event

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/calendar/domain"
	"github.com/spf13/cobra"
)

var (
	day      string
	from     string
	until    string
	location string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a calendar event",
	Long: `Add a busy block to the calendar.

Examples:
  daybreak event add "Team standup" --day 2026-09-01 --from 09:00 --until 09:30 --location office
  daybreak event add "Dentist" --day 2026-09-01 --from 14:00 --until 15:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EventService == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		if day == "" {
			day = time.Now().UTC().Format("2006-01-02")
		}
		start, err := parseDayAndClock(day, from)
		if err != nil {
			return err
		}
		end, err := parseDayAndClock(day, until)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		created, err := app.EventService.AddEvent(ctx, args[0], start, end, domain.LocationLabel(location))
		if err != nil {
			return fmt.Errorf("failed to add event: %w", err)
		}

		fmt.Printf("Event added: %s\n", created.ID())
		fmt.Printf("  %s %s-%s\n", day, from, until)

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&day, "day", "d", "", "event date (YYYY-MM-DD, defaults to today)")
	addCmd.Flags().StringVar(&from, "from", "", "start time (HH:MM)")
	addCmd.Flags().StringVar(&until, "until", "", "end time (HH:MM)")
	addCmd.Flags().StringVarP(&location, "location", "l", "", "where the event takes place")
	_ = addCmd.MarkFlagRequired("from")
	_ = addCmd.MarkFlagRequired("until")
}
