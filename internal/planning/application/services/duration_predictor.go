package services

import (
	"math"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
)

// DurationPredictor maintains the adaptive expected-duration curve for
// deadline memos and turns predictor state plus user history into a concrete
// session length for today. Routine and backlog memos bypass the regression
// entirely: their last accepted duration is used as-is.
type DurationPredictor struct {
	config Config
}

// NewDurationPredictor creates a predictor with the given configuration.
func NewDurationPredictor(config Config) *DurationPredictor {
	return &DurationPredictor{config: config}
}

// Predict returns (duration, baseDuration) in minutes for a session today.
// baseDuration is the shrink floor used by the gap allocator. Deadline
// sessions may only be extended by the regression, never shrunk below the
// user's original estimate.
func (p *DurationPredictor) Predict(m *memo.Memo, now time.Time) (int, int) {
	base := m.SessionDuration()

	switch m.Type() {
	case memo.TypeDeadline:
		st := m.DeadlineState()
		if st == nil || len(st.ExpectedDurations) == 0 {
			return base, base
		}
		expected := float64(st.ExpectedDurations[st.DayOffset(memo.DayOf(now))])
		predicted := int(math.Round(expected * st.SmoothedMultiplier))
		if predicted < base {
			predicted = base
		}
		return predicted, base
	case memo.TypeRoutine:
		st := m.Routine()
		if st != nil && st.LastAcceptedDuration > 0 {
			return st.LastAcceptedDuration, minInt(base, st.LastAcceptedDuration)
		}
		return base, base
	default:
		st := m.Backlog()
		if st != nil && st.LastAcceptedDuration > 0 {
			return st.LastAcceptedDuration, minInt(base, st.LastAcceptedDuration)
		}
		return base, base
	}
}

// RecordCompletion folds a finished session into the smoothed multiplier for
// a deadline memo. The memo has already accumulated the actual minutes into
// its state; this step only re-estimates how far reality runs from the
// seeded curve, bounded so a single outlier cannot dominate.
func (p *DurationPredictor) RecordCompletion(m *memo.Memo) {
	if m.Type() != memo.TypeDeadline {
		return
	}
	st := m.DeadlineState()
	if st == nil || len(st.ExpectedDurations) == 0 {
		return
	}

	var actualSum, expectedSum int
	for i, actual := range st.ActualDurations {
		if actual > 0 {
			actualSum += actual
			expectedSum += st.ExpectedDurations[i]
		}
	}
	if expectedSum == 0 {
		return
	}

	ratio := float64(actualSum) / float64(expectedSum)
	smoothed := st.SmoothedMultiplier + p.config.SmoothingAlpha*(ratio-st.SmoothedMultiplier)
	st.SmoothedMultiplier = clamp(smoothed, p.config.MultiplierMin, p.config.MultiplierMax)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
