package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	sharedApplication "github.com/felixgeelhaar/daybreak/internal/shared/application"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// UndoReactionCommand reverses the most recent accept or complete on a memo.
type UndoReactionCommand struct {
	MemoID uuid.UUID
	When   time.Time
}

// UndoReactionHandler handles the UndoReactionCommand.
type UndoReactionHandler struct {
	memoRepo  memo.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewUndoReactionHandler creates a new UndoReactionHandler.
func NewUndoReactionHandler(memoRepo memo.Repository, publisher eventbus.Publisher, logger *slog.Logger) *UndoReactionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UndoReactionHandler{memoRepo: memoRepo, publisher: publisher, logger: logger}
}

// Handle executes the UndoReactionCommand. Undo only works on the day of the
// reaction; the domain returns memo.ErrUndoExpired afterwards.
func (h *UndoReactionHandler) Handle(ctx context.Context, cmd UndoReactionCommand) error {
	m, err := h.memoRepo.FindByID(ctx, cmd.MemoID)
	if err != nil {
		return err
	}
	if m == nil {
		h.logger.Debug("undo ignored, memo gone", "memo_id", cmd.MemoID)
		return nil
	}

	if err := m.Undo(effectiveTime(cmd.When)); err != nil {
		return err
	}

	if err := h.memoRepo.Save(ctx, m); err != nil {
		return err
	}

	sharedApplication.PublishEvents(ctx, h.publisher, h.logger, m)
	return nil
}
