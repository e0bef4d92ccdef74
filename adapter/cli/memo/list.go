package memo

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var filterType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memos",
	Long: `List active memos, newest first.

Examples:
  daybreak memo list
  daybreak memo list --type routine`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListMemosHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		memos, err := app.ListMemosHandler.Handle(ctx, queries.ListMemosQuery{Type: filterType})
		if err != nil {
			return fmt.Errorf("failed to list memos: %w", err)
		}

		if len(memos) == 0 {
			fmt.Println("No memos found.")
			return nil
		}

		fmt.Printf("Memos (%d):\n", len(memos))
		fmt.Println(strings.Repeat("-", 60))

		for _, m := range memos {
			fmt.Printf("%s %s %s\n", typeBadge(m.Type), m.Title, reactionMarker(m))
			fmt.Printf("   ID: %s\n", m.ID.String()[:8])
			if m.Genre != "" {
				fmt.Printf("   Genre: %s\n", m.Genre)
			}
			switch m.Type {
			case "deadline":
				if m.Deadline != nil {
					fmt.Printf("   Due: %s\n", m.Deadline.Format("2006-01-02"))
				}
				if m.MinutesLogged > 0 {
					fmt.Printf("   Logged: %d of %d min\n", m.MinutesLogged, m.TotalMins)
				}
			case "routine":
				fmt.Printf("   Goal: %d per %s (%d done this %s)\n",
					m.GoalCount, m.GoalPeriod, m.CompletedThisPeriod, m.GoalPeriod)
			}
			fmt.Println()
		}

		return nil
	},
}

func typeBadge(memoType string) string {
	switch memoType {
	case "deadline":
		return "[D]"
	case "routine":
		return "[R]"
	default:
		return "[B]"
	}
}

func reactionMarker(m queries.MemoDTO) string {
	switch {
	case m.AcceptedToday:
		return "(accepted today)"
	case m.RejectedToday:
		return "(rejected today)"
	default:
		return ""
	}
}

func init() {
	listCmd.Flags().StringVarP(&filterType, "type", "t", "", "filter by memo type (deadline, routine, backlog)")
}
