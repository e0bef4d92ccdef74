// Package commands holds the write-side handlers of the planning context.
// Each handler loads an aggregate, applies one reaction or mutation, persists
// it, and publishes the resulting domain events best-effort.
package commands

import (
	"context"
	"log/slog"
	"time"

	enrichmentDomain "github.com/felixgeelhaar/daybreak/internal/enrichment/domain"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	sharedApplication "github.com/felixgeelhaar/daybreak/internal/shared/application"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// CreateMemoCommand contains the data needed to create a memo. Zero-valued
// optional fields are filled by the enricher.
type CreateMemoCommand struct {
	Title         string
	Type          string
	Genre         string
	Deadline      *time.Time
	GoalCount     int
	GoalPeriod    string
	SessionMins   int
	TotalMins     int
	Importance    string
	Location      string
	AvailableFrom *time.Time

	// When overrides the creation instant; zero means now. Exists for the
	// rollover-sensitive callers and for tests.
	When time.Time
}

// CreateMemoResult contains the result of creating a memo.
type CreateMemoResult struct {
	MemoID uuid.UUID
	Genre  string
	// Enriched is false when the enrichment backend was unavailable and
	// deterministic defaults were used instead.
	Enriched bool
}

// CreateMemoHandler handles the CreateMemoCommand.
type CreateMemoHandler struct {
	memoRepo  memo.Repository
	enricher  enrichmentDomain.Enricher
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCreateMemoHandler creates a new CreateMemoHandler.
func NewCreateMemoHandler(memoRepo memo.Repository, enricher enrichmentDomain.Enricher, publisher eventbus.Publisher, logger *slog.Logger) *CreateMemoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateMemoHandler{
		memoRepo:  memoRepo,
		enricher:  enricher,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the CreateMemoCommand.
func (h *CreateMemoHandler) Handle(ctx context.Context, cmd CreateMemoCommand) (*CreateMemoResult, error) {
	now := effectiveTime(cmd.When)

	memoType, err := memo.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}

	enriched := h.applyEnrichment(ctx, &cmd, memoType)

	importance := memo.Importance(cmd.Importance)
	location := memo.LocationPreference(cmd.Location)

	var m *memo.Memo
	switch memoType {
	case memo.TypeDeadline:
		if cmd.Deadline == nil {
			return nil, memo.ErrDeadlineBeforeCreation
		}
		m, err = memo.NewDeadlineMemo(cmd.Title, *cmd.Deadline, cmd.SessionMins, cmd.TotalMins, importance, location, now)
	case memo.TypeRoutine:
		period, perr := memo.ParsePeriod(cmd.GoalPeriod)
		if perr != nil {
			return nil, memo.ErrMissingGoal
		}
		goal := memo.RecurrenceGoal{Count: cmd.GoalCount, Period: period}
		m, err = memo.NewRoutineMemo(cmd.Title, goal, cmd.SessionMins, importance, location, now)
	case memo.TypeBacklog:
		m, err = memo.NewBacklogMemo(cmd.Title, cmd.SessionMins, cmd.TotalMins, importance, location, now)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Genre != "" {
		m.SetGenre(cmd.Genre)
	}
	if cmd.AvailableFrom != nil {
		m.SetAvailableFrom(cmd.AvailableFrom)
	}

	if err := h.memoRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	sharedApplication.PublishEvents(ctx, h.publisher, h.logger, m)

	return &CreateMemoResult{MemoID: m.ID(), Genre: m.Genre(), Enriched: enriched}, nil
}

// applyEnrichment fills the command's blank fields from the enricher. It
// reports whether the live backend answered; an unavailable backend still
// fills blanks with deterministic defaults and never fails creation.
func (h *CreateMemoHandler) applyEnrichment(ctx context.Context, cmd *CreateMemoCommand, memoType memo.Type) bool {
	needsGenre := cmd.Genre == ""
	needsSession := cmd.SessionMins <= 0
	needsTotal := cmd.TotalMins <= 0 && memoType != memo.TypeRoutine
	if !needsGenre && !needsSession && !needsTotal {
		return true
	}
	if h.enricher == nil {
		h.fillStaticDefaults(cmd, memoType)
		return false
	}

	enrichment, err := h.enricher.Enrich(ctx, cmd.Title, string(memoType))
	available := err == nil
	if err != nil {
		h.logger.Warn("memo enrichment degraded", "title", cmd.Title, "error", err)
	}

	if needsGenre && enrichment.Genre != "" {
		cmd.Genre = enrichment.Genre
	}
	if needsSession && enrichment.SessionDurationMinutes > 0 {
		cmd.SessionMins = enrichment.SessionDurationMinutes
	}
	if needsTotal && enrichment.TotalDurationMinutes > 0 {
		cmd.TotalMins = enrichment.TotalDurationMinutes
	}
	h.fillStaticDefaults(cmd, memoType)
	return available
}

func (h *CreateMemoHandler) fillStaticDefaults(cmd *CreateMemoCommand, memoType memo.Type) {
	if cmd.SessionMins <= 0 {
		cmd.SessionMins = 30
	}
	if cmd.TotalMins <= 0 && memoType != memo.TypeRoutine {
		cmd.TotalMins = 4 * cmd.SessionMins
	}
}

// effectiveTime resolves an optional command timestamp.
func effectiveTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
