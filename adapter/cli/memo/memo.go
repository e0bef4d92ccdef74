package memo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Cmd is the memo command group
var Cmd = &cobra.Command{
	Use:   "memo",
	Short: "Manage memos",
	Long:  `Create, list, and react to deadline, routine, and backlog memos.`,
}

func parseMemoID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid memo id %q: %w", arg, err)
	}
	return id, nil
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(acceptCmd)
	Cmd.AddCommand(rejectCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(undoCmd)
	Cmd.AddCommand(archiveCmd)
}
