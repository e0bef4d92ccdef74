package services

import (
	"testing"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationPredictor_Predict(t *testing.T) {
	predictor := NewDurationPredictor(DefaultConfig())

	t.Run("deadline prediction follows the seeded curve", func(t *testing.T) {
		m := deadlineMemo(t, 4) // base 30, curve 30..150

		day0, base := predictor.Predict(m, monday)
		day4, _ := predictor.Predict(m, monday.AddDate(0, 0, 4))

		assert.Equal(t, 30, day0)
		assert.Equal(t, 30, base)
		assert.Equal(t, 150, day4)
	})

	t.Run("multiplier extends the prediction", func(t *testing.T) {
		m := deadlineMemo(t, 4)
		m.DeadlineState().SmoothedMultiplier = 2.0

		day2, _ := predictor.Predict(m, monday.AddDate(0, 0, 2))

		assert.Equal(t, 180, day2) // curve midpoint 90 x 2.0
	})

	t.Run("prediction never drops below the base duration", func(t *testing.T) {
		m := deadlineMemo(t, 4)
		m.DeadlineState().SmoothedMultiplier = 0.5

		day0, base := predictor.Predict(m, monday)

		assert.Equal(t, base, day0)
		assert.Equal(t, 30, day0)
	})

	t.Run("past-deadline prediction clamps to the final day", func(t *testing.T) {
		m := deadlineMemo(t, 4)

		late, _ := predictor.Predict(m, monday.AddDate(0, 0, 9))

		assert.Equal(t, 150, late)
	})

	t.Run("routine uses the last accepted duration directly", func(t *testing.T) {
		m := routineMemo(t, memo.RecurrenceGoal{Count: 3, Period: memo.PeriodWeek})
		require.NoError(t, m.Complete(25, monday))

		duration, base := predictor.Predict(m, monday.AddDate(0, 0, 1))

		assert.Equal(t, 25, duration)
		assert.Equal(t, 15, base)
	})

	t.Run("backlog falls back to the session duration without history", func(t *testing.T) {
		m := backlogMemo(t)

		duration, base := predictor.Predict(m, monday)

		assert.Equal(t, 45, duration)
		assert.Equal(t, 45, base)
	})
}

func TestDurationPredictor_RecordCompletion(t *testing.T) {
	predictor := NewDurationPredictor(DefaultConfig())

	t.Run("smooths toward the actual-to-expected ratio", func(t *testing.T) {
		m := deadlineMemo(t, 4)
		require.NoError(t, m.Complete(60, monday)) // expected 30 on day 0

		predictor.RecordCompletion(m)

		// ratio 2.0, multiplier 1.0 + 0.3*(2.0-1.0) = 1.3
		assert.InDelta(t, 1.3, m.DeadlineState().SmoothedMultiplier, 0.001)
	})

	t.Run("one outlier session cannot run the multiplier away", func(t *testing.T) {
		m := deadlineMemo(t, 4)
		require.NoError(t, m.Complete(3000, monday))

		predictor.RecordCompletion(m)

		assert.LessOrEqual(t, m.DeadlineState().SmoothedMultiplier, DefaultConfig().MultiplierMax)
	})

	t.Run("multiplier is bounded from below", func(t *testing.T) {
		m := deadlineMemo(t, 4)
		m.DeadlineState().SmoothedMultiplier = 0.5
		require.NoError(t, m.Complete(1, monday))

		predictor.RecordCompletion(m)

		assert.GreaterOrEqual(t, m.DeadlineState().SmoothedMultiplier, DefaultConfig().MultiplierMin)
	})

	t.Run("ignores non-deadline memos", func(t *testing.T) {
		m := backlogMemo(t)
		require.NoError(t, m.Complete(60, monday))

		predictor.RecordCompletion(m) // must not panic
	})

	t.Run("array lengths stay fixed through completions", func(t *testing.T) {
		m := deadlineMemo(t, 4)
		for i := 0; i < 3; i++ {
			require.NoError(t, m.Complete(40, monday.AddDate(0, 0, i)))
			predictor.RecordCompletion(m)
		}

		st := m.DeadlineState()
		assert.Len(t, st.ActualDurations, st.TotalDays())
		assert.Len(t, st.ExpectedDurations, st.TotalDays())
	})
}
