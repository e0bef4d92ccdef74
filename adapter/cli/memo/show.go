package memo

import (
	"fmt"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a memo's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetMemoHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseMemoID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		m, err := app.GetMemoHandler.Handle(ctx, queries.GetMemoQuery{MemoID: id})
		if err != nil {
			return fmt.Errorf("failed to load memo: %w", err)
		}

		fmt.Printf("%s %s\n", typeBadge(m.Type), m.Title)
		fmt.Printf("  ID: %s\n", m.ID)
		fmt.Printf("  Type: %s\n", m.Type)
		if m.Genre != "" {
			fmt.Printf("  Genre: %s\n", m.Genre)
		}
		fmt.Printf("  Importance: %s\n", m.Importance)
		fmt.Printf("  Location: %s\n", m.Location)
		fmt.Printf("  Session: %d min\n", m.SessionMins)
		if m.TotalMins > 0 {
			fmt.Printf("  Total: %d min\n", m.TotalMins)
		}
		if m.Deadline != nil {
			fmt.Printf("  Due: %s\n", m.Deadline.Format("2006-01-02"))
		}
		if m.GoalCount > 0 {
			fmt.Printf("  Goal: %d per %s\n", m.GoalCount, m.GoalPeriod)
			fmt.Printf("  Done this %s: %d\n", m.GoalPeriod, m.CompletedThisPeriod)
			if m.GoalMetThisPeriod {
				fmt.Println("  Goal met this period")
			}
		}
		if m.MinutesLogged > 0 {
			fmt.Printf("  Logged: %d min\n", m.MinutesLogged)
		}
		if m.AvailableFrom != nil {
			fmt.Printf("  Available from: %s\n", m.AvailableFrom.Format("2006-01-02"))
		}
		if marker := reactionMarker(*m); marker != "" {
			fmt.Printf("  Today: %s\n", marker)
		}
		fmt.Printf("  Created: %s\n", m.CreatedAt.Format("2006-01-02"))

		return nil
	},
}
