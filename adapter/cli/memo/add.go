package memo

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var (
	memoType      string
	genre         string
	due           string
	goalCount     int
	goalPeriod    string
	sessionMins   int
	totalMins     int
	importance    string
	location      string
	availableFrom string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new memo",
	Long: `Add a new deadline, routine, or backlog memo.

Blank genre and duration fields are filled in automatically from the
title; pass them explicitly to override.

Examples:
  daybreak memo add "File tax return" --type deadline --due 2026-04-15
  daybreak memo add "Morning run" --type routine --goal 3 --period week
  daybreak memo add "Learn woodworking" --type backlog --importance low`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateMemoHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		createCmd := commands.CreateMemoCommand{
			Title:       args[0],
			Type:        memoType,
			Genre:       genre,
			GoalCount:   goalCount,
			GoalPeriod:  goalPeriod,
			SessionMins: sessionMins,
			TotalMins:   totalMins,
			Importance:  importance,
			Location:    location,
		}

		if due != "" {
			parsed, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
			}
			// A deadline applies through the end of its day.
			deadline := parsed.Add(24*time.Hour - time.Second)
			createCmd.Deadline = &deadline
		}
		if availableFrom != "" {
			parsed, err := time.Parse("2006-01-02", availableFrom)
			if err != nil {
				return fmt.Errorf("invalid availability date format (use YYYY-MM-DD): %w", err)
			}
			createCmd.AvailableFrom = &parsed
		}

		ctx := cmd.Context()
		result, err := app.CreateMemoHandler.Handle(ctx, createCmd)
		if err != nil {
			return fmt.Errorf("failed to add memo: %w", err)
		}

		fmt.Printf("Memo added: %s\n", result.MemoID)
		fmt.Printf("  title: %s\n", args[0])
		fmt.Printf("  type: %s\n", memoType)
		if result.Genre != "" {
			fmt.Printf("  genre: %s\n", result.Genre)
		}
		if !result.Enriched {
			fmt.Println("  (enrichment unavailable, defaults applied)")
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&memoType, "type", "t", "backlog", "memo type (deadline, routine, backlog)")
	addCmd.Flags().StringVarP(&genre, "genre", "g", "", "genre label (derived from the title when empty)")
	addCmd.Flags().StringVar(&due, "due", "", "deadline date (YYYY-MM-DD, deadline memos only)")
	addCmd.Flags().IntVar(&goalCount, "goal", 0, "completions wanted per period (routine memos only)")
	addCmd.Flags().StringVar(&goalPeriod, "period", "", "goal period (day, week, month)")
	addCmd.Flags().IntVarP(&sessionMins, "session", "s", 0, "ideal session length in minutes")
	addCmd.Flags().IntVar(&totalMins, "total", 0, "total expected effort in minutes")
	addCmd.Flags().StringVarP(&importance, "importance", "i", "low", "importance (low, medium, high)")
	addCmd.Flags().StringVarP(&location, "location", "l", "none", "location preference (home, workplace, none)")
	addCmd.Flags().StringVar(&availableFrom, "from", "", "suppress suggestions before this date (YYYY-MM-DD)")
}
