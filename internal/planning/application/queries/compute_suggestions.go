// Package queries holds the read-side handlers of the planning context.
package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/application/services"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/schedule"
)

// GapProvider supplies the day's free-time windows. The calendar context
// implements it; a nil provider means suggestions are scored but not placed.
type GapProvider interface {
	GapsForDay(ctx context.Context, day time.Time) ([]schedule.Gap, error)
}

// ComputeSuggestionsQuery asks for the current suggestion list.
type ComputeSuggestionsQuery struct {
	// When is the scoring instant; zero means now.
	When time.Time
	// IncludeHidden keeps below-threshold suggestions in the response.
	IncludeHidden bool
}

// ComputeSuggestionsResult is the scored and placed suggestion list.
type ComputeSuggestionsResult struct {
	Suggestions []schedule.Suggestion
	Gaps        []schedule.Gap
	Allocation  schedule.AllocationResult
}

// ComputeSuggestionsHandler runs one full scoring pass: lazy rollover,
// scoring, then gap allocation. Reads trigger persistence only for memos the
// rollover actually changed.
type ComputeSuggestionsHandler struct {
	memoRepo  memo.Repository
	builder   *services.SuggestionBuilder
	allocator *services.GapAllocator
	gaps      GapProvider
	logger    *slog.Logger
}

// NewComputeSuggestionsHandler creates a new ComputeSuggestionsHandler.
func NewComputeSuggestionsHandler(memoRepo memo.Repository, builder *services.SuggestionBuilder, allocator *services.GapAllocator, gaps GapProvider, logger *slog.Logger) *ComputeSuggestionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComputeSuggestionsHandler{
		memoRepo:  memoRepo,
		builder:   builder,
		allocator: allocator,
		gaps:      gaps,
		logger:    logger,
	}
}

// Handle executes the ComputeSuggestionsQuery.
func (h *ComputeSuggestionsHandler) Handle(ctx context.Context, query ComputeSuggestionsQuery) (*ComputeSuggestionsResult, error) {
	now := query.When
	if now.IsZero() {
		now = time.Now()
	}

	memos, err := h.memoRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	built := h.builder.Build(memos, now)

	// A rollover that fails to persist repeats lazily on the next read, so a
	// save error degrades the pass instead of failing it.
	for _, m := range built.RolledOver {
		if err := h.memoRepo.Save(ctx, m); err != nil {
			h.logger.Error("failed to persist lazy rollover", "memo_id", m.ID(), "error", err)
		}
	}

	var gaps []schedule.Gap
	if h.gaps != nil {
		gaps, err = h.gaps.GapsForDay(ctx, now)
		if err != nil {
			return nil, err
		}
		if err := schedule.ValidateGaps(gaps); err != nil {
			return nil, err
		}
	}

	// Only visible suggestions compete for gaps; IncludeHidden widens the
	// returned list for inspection but never lets a hidden memo consume a gap.
	visible := make([]schedule.Suggestion, 0, len(built.Suggestions))
	for _, s := range built.Suggestions {
		if !s.Hidden {
			visible = append(visible, s)
		}
	}

	suggestions := visible
	if query.IncludeHidden {
		suggestions = built.Suggestions
	}

	return &ComputeSuggestionsResult{
		Suggestions: suggestions,
		Gaps:        gaps,
		Allocation:  h.allocator.Allocate(visible, gaps),
	}, nil
}
