package memo

import (
	"fmt"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a memo",
	Long:  `Archive a memo so it no longer produces suggestions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ArchiveMemoHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseMemoID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.ArchiveMemoHandler.Handle(ctx, commands.ArchiveMemoCommand{MemoID: id}); err != nil {
			return fmt.Errorf("failed to archive memo: %w", err)
		}

		fmt.Printf("Archived: %s\n", args[0])
		return nil
	},
}
