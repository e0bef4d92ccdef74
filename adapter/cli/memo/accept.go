package memo

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/queries"
	planningMemo "github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/spf13/cobra"
)

var (
	acceptAt      string
	acceptMinutes int
)

var acceptCmd = &cobra.Command{
	Use:   "accept [id]",
	Short: "Accept today's suggestion for a memo",
	Long: `Accept today's suggestion for a memo, committing a working slot.

The slot starts now unless --at is given; its length defaults to the
memo's session duration.

Examples:
  daybreak memo accept 3f1c...
  daybreak memo accept 3f1c... --at 14:30 --minutes 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AcceptMemoHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseMemoID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		minutes := acceptMinutes
		if minutes <= 0 {
			dto, err := app.GetMemoHandler.Handle(ctx, queries.GetMemoQuery{MemoID: id})
			if err != nil {
				return fmt.Errorf("failed to load memo: %w", err)
			}
			minutes = dto.SessionMins
		}

		start := time.Now()
		if acceptAt != "" {
			clock, err := time.Parse("15:04", acceptAt)
			if err != nil {
				return fmt.Errorf("invalid slot start (use HH:MM): %w", err)
			}
			y, m, d := start.Date()
			start = time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, start.Location())
		}

		acceptCmd := commands.AcceptMemoCommand{
			MemoID: id,
			Slot: planningMemo.Slot{
				Start: start,
				End:   start.Add(time.Duration(minutes) * time.Minute),
			},
		}
		if err := app.AcceptMemoHandler.Handle(ctx, acceptCmd); err != nil {
			return fmt.Errorf("failed to accept memo: %w", err)
		}

		fmt.Printf("Accepted: %s from %s for %d minutes\n",
			args[0], start.Format("15:04"), minutes)

		return nil
	},
}

func init() {
	acceptCmd.Flags().StringVar(&acceptAt, "at", "", "slot start time (HH:MM, defaults to now)")
	acceptCmd.Flags().IntVarP(&acceptMinutes, "minutes", "m", 0, "slot length in minutes (defaults to the session duration)")
}
