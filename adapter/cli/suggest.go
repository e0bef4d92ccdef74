package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/application/queries"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/schedule"
	"github.com/spf13/cobra"
)

var (
	suggestAll  bool
	suggestDate string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show today's suggestions",
	Long: `Score every active memo, derive the day's free gaps from the
calendar, and show which sessions fit where.

Examples:
  daybreak suggest
  daybreak suggest --all
  daybreak suggest --date 2026-09-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ComputeSuggestionsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ComputeSuggestionsQuery{IncludeHidden: suggestAll}
		if suggestDate != "" {
			parsed, err := time.Parse("2006-01-02", suggestDate)
			if err != nil {
				return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
			}
			query.When = parsed
		}

		ctx := cmd.Context()
		result, err := app.ComputeSuggestionsHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to compute suggestions: %w", err)
		}

		if len(result.Suggestions) == 0 {
			fmt.Println("Nothing to suggest.")
			return nil
		}

		fmt.Printf("Suggestions (%d):\n", len(result.Suggestions))
		fmt.Println(strings.Repeat("-", 60))

		for _, s := range result.Suggestions {
			marker := " "
			if s.Mandatory() {
				marker = "!"
			}
			fmt.Printf("%s %s  need %.2f  %d min\n", marker, s.MemoID.String()[:8], s.Need, s.Duration)
			if s.Hidden {
				fmt.Println("   (hidden)")
			}
			if placement, ok := result.Allocation.PlacementFor(s.MemoID); ok {
				fmt.Printf("   -> gap %s (%d min", placement.GapID, placement.AllocatedMinutes)
				if placement.AllocatedMinutes < s.Duration {
					fmt.Print(", shrunk")
				}
				fmt.Println(")")
			}
		}

		if len(result.Allocation.Unplaced) > 0 {
			fmt.Printf("\nUnplaced (%d): the day is overcommitted.\n", len(result.Allocation.Unplaced))
		}

		if len(result.Gaps) > 0 {
			fmt.Printf("\nFree gaps (%d):\n", len(result.Gaps))
			for _, g := range result.Gaps {
				fmt.Printf("  %s-%s  %d min%s\n",
					g.Start.Format("15:04"), g.End.Format("15:04"), g.Minutes(), gapLocationSuffix(g))
			}
		}

		return nil
	},
}

func gapLocationSuffix(g schedule.Gap) string {
	if g.Location == "" || g.Location == schedule.GapLocationUnknown {
		return ""
	}
	return fmt.Sprintf("  (%s)", g.Location)
}

func init() {
	suggestCmd.Flags().BoolVarP(&suggestAll, "all", "a", false, "include hidden low-need suggestions")
	suggestCmd.Flags().StringVar(&suggestDate, "date", "", "score for a specific day (YYYY-MM-DD)")
	AddCommand(suggestCmd)
}
