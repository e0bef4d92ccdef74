package memo

import (
	"fmt"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo [id]",
	Short: "Undo today's acceptance of a memo",
	Long: `Undo today's acceptance of a memo, releasing its slot.

Only a same-day acceptance can be undone; rejections and completions
stand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UndoReactionHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseMemoID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.UndoReactionHandler.Handle(ctx, commands.UndoReactionCommand{MemoID: id}); err != nil {
			return fmt.Errorf("failed to undo reaction: %w", err)
		}

		fmt.Printf("Undone: %s\n", args[0])
		return nil
	},
}
