package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/application/services"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
)

// RolloverDayCommand advances every active memo across the day boundary.
// Rollover also happens lazily during scoring; this command exists for the
// explicit morning run (cron, CLI) so suggestion lists open already fresh.
type RolloverDayCommand struct {
	When time.Time
}

// RolloverDayResult contains the result of a bulk rollover.
type RolloverDayResult struct {
	Checked    int
	RolledOver int
}

// RolloverDayHandler handles the RolloverDayCommand.
type RolloverDayHandler struct {
	memoRepo memo.Repository
	tracker  *services.PeriodTracker
	logger   *slog.Logger
}

// NewRolloverDayHandler creates a new RolloverDayHandler.
func NewRolloverDayHandler(memoRepo memo.Repository, tracker *services.PeriodTracker, logger *slog.Logger) *RolloverDayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RolloverDayHandler{memoRepo: memoRepo, tracker: tracker, logger: logger}
}

// Handle executes the RolloverDayCommand. Rollover is idempotent, so a failed
// run can simply be repeated; memos that fail to save are logged and skipped
// rather than aborting the sweep.
func (h *RolloverDayHandler) Handle(ctx context.Context, cmd RolloverDayCommand) (*RolloverDayResult, error) {
	now := effectiveTime(cmd.When)

	memos, err := h.memoRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &RolloverDayResult{Checked: len(memos)}
	for _, m := range memos {
		if err := m.ValidateState(); err != nil {
			h.logger.Error("memo excluded from rollover", "memo_id", m.ID(), "error", err)
			continue
		}
		if !h.tracker.Rollover(m, now) {
			continue
		}
		if err := h.memoRepo.Save(ctx, m); err != nil {
			h.logger.Error("failed to persist rollover", "memo_id", m.ID(), "error", err)
			continue
		}
		result.RolledOver++
	}

	h.logger.Info("day rollover complete", "checked", result.Checked, "rolled_over", result.RolledOver)
	return result, nil
}
