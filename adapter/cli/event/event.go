package event

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Cmd is the event command group
var Cmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
	Long:  `Add, list, and remove the busy blocks that gaps are derived from.`,
}

// parseDayAndClock combines a YYYY-MM-DD day with an HH:MM clock time.
func parseDayAndClock(day, clock string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format (use HH:MM): %w", err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
}
