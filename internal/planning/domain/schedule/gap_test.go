package schedule

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gapDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mustGap(t *testing.T, id string, startHour, minutes int, location GapLocation) Gap {
	t.Helper()
	start := gapDay.Add(time.Duration(startHour) * time.Hour)
	gap, err := NewGap(id, start, start.Add(time.Duration(minutes)*time.Minute), location)
	require.NoError(t, err)
	return gap
}

func TestNewGap(t *testing.T) {
	t.Run("rejects an inverted range", func(t *testing.T) {
		_, err := NewGap("bad", gapDay.Add(2*time.Hour), gapDay.Add(time.Hour), GapLocationHome)
		assert.ErrorIs(t, err, ErrInvalidGapRange)
	})

	t.Run("rejects a zero-length range", func(t *testing.T) {
		_, err := NewGap("bad", gapDay, gapDay, GapLocationHome)
		assert.ErrorIs(t, err, ErrInvalidGapRange)
	})

	t.Run("empty location defaults to unknown", func(t *testing.T) {
		gap, err := NewGap("g", gapDay, gapDay.Add(time.Hour), "")
		require.NoError(t, err)
		assert.Equal(t, GapLocationUnknown, gap.Location)
	})

	t.Run("reports whole minutes", func(t *testing.T) {
		gap := mustGap(t, "g", 9, 90, GapLocationHome)
		assert.Equal(t, 90, gap.Minutes())
	})
}

func TestGap_Accommodates(t *testing.T) {
	cases := []struct {
		name     string
		gap      GapLocation
		pref     memo.LocationPreference
		expected bool
	}{
		{"no preference fits anywhere", GapLocationWorkplace, memo.LocationNone, true},
		{"no preference fits other", GapLocationOther, memo.LocationNone, true},
		{"unknown gap fits any preference", GapLocationUnknown, memo.LocationHome, true},
		{"home matches home", GapLocationHome, memo.LocationHome, true},
		{"workplace matches workplace", GapLocationWorkplace, memo.LocationWorkplace, true},
		{"home rejects workplace", GapLocationHome, memo.LocationWorkplace, false},
		{"workplace rejects home", GapLocationWorkplace, memo.LocationHome, false},
		{"other rejects home", GapLocationOther, memo.LocationHome, false},
		{"other rejects workplace", GapLocationOther, memo.LocationWorkplace, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gap := mustGap(t, "g", 9, 60, tc.gap)
			assert.Equal(t, tc.expected, gap.Accommodates(tc.pref))
		})
	}
}

func TestValidateGaps(t *testing.T) {
	t.Run("accepts an ordered non-overlapping day", func(t *testing.T) {
		gaps := []Gap{
			mustGap(t, "a", 9, 60, GapLocationHome),
			mustGap(t, "b", 12, 30, GapLocationWorkplace),
			mustGap(t, "c", 16, 90, GapLocationUnknown),
		}
		assert.NoError(t, ValidateGaps(gaps))
	})

	t.Run("accepts unsorted input", func(t *testing.T) {
		gaps := []Gap{
			mustGap(t, "b", 12, 30, GapLocationHome),
			mustGap(t, "a", 9, 60, GapLocationHome),
		}
		assert.NoError(t, ValidateGaps(gaps))
	})

	t.Run("rejects overlap", func(t *testing.T) {
		gaps := []Gap{
			mustGap(t, "a", 9, 120, GapLocationHome),
			mustGap(t, "b", 10, 30, GapLocationHome),
		}
		assert.ErrorIs(t, ValidateGaps(gaps), ErrOverlappingGaps)
	})

	t.Run("back-to-back gaps do not overlap", func(t *testing.T) {
		gaps := []Gap{
			mustGap(t, "a", 9, 60, GapLocationHome),
			mustGap(t, "b", 10, 60, GapLocationHome),
		}
		assert.NoError(t, ValidateGaps(gaps))
	})

	t.Run("empty set is valid", func(t *testing.T) {
		assert.NoError(t, ValidateGaps(nil))
	})
}
