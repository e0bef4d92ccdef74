package memo

import (
	"fmt"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var rejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject today's suggestion for a memo",
	Long:  `Reject today's suggestion for a memo, suppressing it for the rest of the day.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RejectMemoHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseMemoID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.RejectMemoHandler.Handle(ctx, commands.RejectMemoCommand{MemoID: id}); err != nil {
			return fmt.Errorf("failed to reject memo: %w", err)
		}

		fmt.Printf("Rejected: %s\n", args[0])
		return nil
	},
}
