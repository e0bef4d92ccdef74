package services

import (
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/schedule"
	"github.com/google/uuid"
)

// SuggestionBuilder turns scored memos into suggestions. One suggestion per
// eligible memo; memos settled for the day produce none at all (a committed
// slot is surfaced through the state record, not a fresh suggestion).
type SuggestionBuilder struct {
	tracker    *PeriodTracker
	calculator *NeedCalculator
	predictor  *DurationPredictor
	config     Config
	logger     *slog.Logger
}

// NewSuggestionBuilder creates a builder from the scoring components.
func NewSuggestionBuilder(tracker *PeriodTracker, calculator *NeedCalculator, predictor *DurationPredictor, config Config, logger *slog.Logger) *SuggestionBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionBuilder{
		tracker:    tracker,
		calculator: calculator,
		predictor:  predictor,
		config:     config,
		logger:     logger,
	}
}

// BuildResult is the outcome of one building pass.
type BuildResult struct {
	Suggestions []schedule.Suggestion
	// RolledOver lists memos whose state changed during lazy rollover;
	// callers persist them.
	RolledOver []*memo.Memo
}

// Build scores every memo and assembles the candidate list. A memo whose
// state record does not match its type is logged and excluded rather than
// failing the pass. Hidden suggestions (need below the threshold) are still
// returned so period bookkeeping stays observable; callers filter on Hidden
// for user-facing lists.
func (b *SuggestionBuilder) Build(memos []*memo.Memo, now time.Time) BuildResult {
	result := BuildResult{Suggestions: make([]schedule.Suggestion, 0, len(memos))}

	for _, m := range memos {
		if m.IsArchived() {
			continue
		}
		if err := m.ValidateState(); err != nil {
			b.logger.Error("memo excluded from scoring",
				"memo_id", m.ID(),
				"type", string(m.Type()),
				"error", err,
			)
			continue
		}

		if b.tracker.Rollover(m, now) {
			result.RolledOver = append(result.RolledOver, m)
		}

		need := b.calculator.Need(m, now)
		if need <= 0 {
			continue
		}

		duration, baseDuration := b.predictor.Predict(m, now)

		result.Suggestions = append(result.Suggestions, schedule.Suggestion{
			ID:           uuid.New(),
			MemoID:       m.ID(),
			Need:         need,
			Importance:   m.Importance().Score(),
			Duration:     duration,
			BaseDuration: baseDuration,
			Type:         m.Type(),
			Location:     m.Location(),
			Hidden:       need < b.config.HiddenThreshold,
		})
	}

	return result
}
