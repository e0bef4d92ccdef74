package cli

import (
	"fmt"

	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Advance all memos past completed days",
	Long: `Advance every active memo past days that have ended: clear daily
reaction flags, close finished routine periods, and shift deadline
progress windows.

Rollover also happens lazily on every scoring pass, so running this
explicitly is only needed for schedulers and cron jobs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RolloverDayHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		result, err := app.RolloverDayHandler.Handle(ctx, commands.RolloverDayCommand{})
		if err != nil {
			return fmt.Errorf("rollover failed: %w", err)
		}

		fmt.Printf("Checked %d memos, rolled over %d.\n", result.Checked, result.RolledOver)
		return nil
	},
}

func init() {
	AddCommand(rolloverCmd)
}
