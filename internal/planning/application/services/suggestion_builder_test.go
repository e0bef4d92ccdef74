package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *SuggestionBuilder {
	config := DefaultConfig()
	return NewSuggestionBuilder(
		NewPeriodTracker(),
		NewNeedCalculator(config),
		NewDurationPredictor(config),
		config,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestSuggestionBuilder_Build(t *testing.T) {
	builder := newBuilder()

	t.Run("one suggestion per eligible memo", func(t *testing.T) {
		memos := []*memo.Memo{
			deadlineMemo(t, 4),
			routineMemo(t, memo.RecurrenceGoal{Count: 3, Period: memo.PeriodWeek}),
		}

		result := builder.Build(memos, monday)

		require.Len(t, result.Suggestions, 2)
		assert.NotEqual(t, result.Suggestions[0].ID, result.Suggestions[1].ID)
	})

	t.Run("importance maps to a fixed additive score", func(t *testing.T) {
		memos := []*memo.Memo{
			deadlineMemo(t, 4), // high
			backlogMemo(t),     // low
		}

		result := builder.Build(memos, monday.AddDate(0, 0, 1))

		require.Len(t, result.Suggestions, 2)
		byMemo := map[string]float64{}
		for _, s := range result.Suggestions {
			byMemo[s.MemoID.String()] = s.Importance
		}
		assert.Equal(t, 0.4, byMemo[memos[0].ID().String()])
		assert.Equal(t, 0.0, byMemo[memos[1].ID().String()])
	})

	t.Run("low need is marked hidden, not dropped", func(t *testing.T) {
		m := backlogMemo(t)

		result := builder.Build([]*memo.Memo{m}, monday.AddDate(0, 0, 2))

		require.Len(t, result.Suggestions, 1)
		s := result.Suggestions[0]
		assert.Less(t, s.Need, builder.config.HiddenThreshold)
		assert.True(t, s.Hidden)
	})

	t.Run("settled memo produces no suggestion", func(t *testing.T) {
		m := backlogMemo(t)
		slot := memo.Slot{Start: monday.Add(time.Hour), End: monday.Add(2 * time.Hour)}
		require.NoError(t, m.Accept(slot, monday))

		result := builder.Build([]*memo.Memo{m}, monday)

		assert.Empty(t, result.Suggestions)
	})

	t.Run("archived memo produces no suggestion", func(t *testing.T) {
		m := backlogMemo(t)
		m.Archive()

		result := builder.Build([]*memo.Memo{m}, monday.AddDate(0, 0, 30))

		assert.Empty(t, result.Suggestions)
	})

	t.Run("memo with mismatched state is skipped without failing the pass", func(t *testing.T) {
		broken := memo.RehydrateMemo(
			uuid.New(), "broken", memo.TypeBacklog, "", nil, nil,
			memo.LocationNone, memo.ImportanceLow, 30, 60,
			monday, nil, false, monday, monday,
			nil, nil, nil, // no state record attached
		)
		healthy := deadlineMemo(t, 4)

		result := builder.Build([]*memo.Memo{broken, healthy}, monday)

		require.Len(t, result.Suggestions, 1)
		assert.Equal(t, healthy.ID(), result.Suggestions[0].MemoID)
	})

	t.Run("lazy rollover reports changed memos", func(t *testing.T) {
		m := backlogMemo(t)
		slot := memo.Slot{Start: monday.Add(time.Hour), End: monday.Add(2 * time.Hour)}
		require.NoError(t, m.Accept(slot, monday))

		result := builder.Build([]*memo.Memo{m}, monday.AddDate(0, 0, 1))

		require.Len(t, result.RolledOver, 1)
		assert.Equal(t, m.ID(), result.RolledOver[0].ID())
		assert.False(t, m.Backlog().AcceptedToday)
		// No longer settled, so it scores again.
		require.Len(t, result.Suggestions, 1)
	})

	t.Run("deadline on its final day is mandatory and never hidden", func(t *testing.T) {
		m := deadlineMemo(t, 4)

		result := builder.Build([]*memo.Memo{m}, monday.AddDate(0, 0, 4))

		require.Len(t, result.Suggestions, 1)
		s := result.Suggestions[0]
		assert.True(t, s.Mandatory())
		assert.False(t, s.Hidden)
	})
}
