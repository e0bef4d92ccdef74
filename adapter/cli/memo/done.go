package memo

import (
	"fmt"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var doneMinutes int

var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Log a completed session",
	Long: `Log a completed session for a memo.

For deadline memos the actual minutes feed the duration prediction of
future sessions; for routines they count toward the period goal.

Examples:
  daybreak memo done 3f1c... --minutes 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteMemoHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseMemoID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.CompleteMemoHandler.Handle(ctx, commands.CompleteMemoCommand{
			MemoID:        id,
			ActualMinutes: doneMinutes,
		})
		if err != nil {
			return fmt.Errorf("failed to log completion: %w", err)
		}

		fmt.Printf("Completed: %s (%d minutes)\n", args[0], doneMinutes)
		if result.GoalMet {
			fmt.Println("Period goal met.")
		}

		return nil
	},
}

func init() {
	doneCmd.Flags().IntVarP(&doneMinutes, "minutes", "m", 0, "actual minutes spent")
	_ = doneCmd.MarkFlagRequired("minutes")
}
