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

// AcceptMemoCommand commits a memo to a working slot today.
type AcceptMemoCommand struct {
	MemoID uuid.UUID
	Slot   memo.Slot
	When   time.Time
}

// AcceptMemoHandler handles the AcceptMemoCommand.
type AcceptMemoHandler struct {
	memoRepo  memo.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewAcceptMemoHandler creates a new AcceptMemoHandler.
func NewAcceptMemoHandler(memoRepo memo.Repository, publisher eventbus.Publisher, logger *slog.Logger) *AcceptMemoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AcceptMemoHandler{memoRepo: memoRepo, publisher: publisher, logger: logger}
}

// Handle executes the AcceptMemoCommand. A reaction addressed to a memo that
// no longer exists is a silent no-op: the suggestion the user acted on was
// simply stale.
func (h *AcceptMemoHandler) Handle(ctx context.Context, cmd AcceptMemoCommand) error {
	m, err := h.memoRepo.FindByID(ctx, cmd.MemoID)
	if err != nil {
		return err
	}
	if m == nil {
		h.logger.Debug("accept ignored, memo gone", "memo_id", cmd.MemoID)
		return nil
	}

	if err := m.Accept(cmd.Slot, effectiveTime(cmd.When)); err != nil {
		return err
	}

	if err := h.memoRepo.Save(ctx, m); err != nil {
		return err
	}

	sharedApplication.PublishEvents(ctx, h.publisher, h.logger, m)
	return nil
}
