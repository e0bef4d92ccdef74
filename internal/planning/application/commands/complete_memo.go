package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/application/services"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	sharedApplication "github.com/felixgeelhaar/daybreak/internal/shared/application"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// CompleteMemoCommand logs a finished working session.
type CompleteMemoCommand struct {
	MemoID        uuid.UUID
	ActualMinutes int
	When          time.Time
}

// CompleteMemoResult contains the result of logging a completion.
type CompleteMemoResult struct {
	// GoalMet reports whether a routine memo reached its recurrence goal with
	// this completion.
	GoalMet bool
}

// CompleteMemoHandler handles the CompleteMemoCommand. Completions feed the
// duration predictor, so deadline estimates track how the user actually works.
type CompleteMemoHandler struct {
	memoRepo  memo.Repository
	predictor *services.DurationPredictor
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCompleteMemoHandler creates a new CompleteMemoHandler.
func NewCompleteMemoHandler(memoRepo memo.Repository, predictor *services.DurationPredictor, publisher eventbus.Publisher, logger *slog.Logger) *CompleteMemoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompleteMemoHandler{memoRepo: memoRepo, predictor: predictor, publisher: publisher, logger: logger}
}

// Handle executes the CompleteMemoCommand.
func (h *CompleteMemoHandler) Handle(ctx context.Context, cmd CompleteMemoCommand) (*CompleteMemoResult, error) {
	m, err := h.memoRepo.FindByID(ctx, cmd.MemoID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		h.logger.Debug("completion ignored, memo gone", "memo_id", cmd.MemoID)
		return &CompleteMemoResult{}, nil
	}

	if err := m.Complete(cmd.ActualMinutes, effectiveTime(cmd.When)); err != nil {
		return nil, err
	}

	h.predictor.RecordCompletion(m)

	if err := h.memoRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	sharedApplication.PublishEvents(ctx, h.publisher, h.logger, m)

	result := &CompleteMemoResult{}
	if st := m.Routine(); st != nil {
		result.GoalMet = st.WasCappedThisPeriod
	}
	return result, nil
}
