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

// RejectMemoCommand settles a memo for the day without scheduling it.
type RejectMemoCommand struct {
	MemoID uuid.UUID
	When   time.Time
}

// RejectMemoHandler handles the RejectMemoCommand.
type RejectMemoHandler struct {
	memoRepo  memo.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewRejectMemoHandler creates a new RejectMemoHandler.
func NewRejectMemoHandler(memoRepo memo.Repository, publisher eventbus.Publisher, logger *slog.Logger) *RejectMemoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RejectMemoHandler{memoRepo: memoRepo, publisher: publisher, logger: logger}
}

// Handle executes the RejectMemoCommand. Rejecting an already-accepted memo
// releases its committed slot for the rest of the day.
func (h *RejectMemoHandler) Handle(ctx context.Context, cmd RejectMemoCommand) error {
	m, err := h.memoRepo.FindByID(ctx, cmd.MemoID)
	if err != nil {
		return err
	}
	if m == nil {
		h.logger.Debug("reject ignored, memo gone", "memo_id", cmd.MemoID)
		return nil
	}

	if err := m.Reject(effectiveTime(cmd.When)); err != nil {
		return err
	}

	if err := h.memoRepo.Save(ctx, m); err != nil {
		return err
	}

	sharedApplication.PublishEvents(ctx, h.publisher, h.logger, m)
	return nil
}
