package memo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDay = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday

func newTestDeadline(t *testing.T, daysUntilDeadline int) *Memo {
	t.Helper()
	m, err := NewDeadlineMemo("ship report", baseDay.AddDate(0, 0, daysUntilDeadline), 30, 120, ImportanceMedium, LocationNone, baseDay)
	require.NoError(t, err)
	return m
}

func newTestRoutine(t *testing.T, goal RecurrenceGoal) *Memo {
	t.Helper()
	m, err := NewRoutineMemo("morning run", goal, 20, ImportanceMedium, LocationNone, baseDay)
	require.NoError(t, err)
	return m
}

func newTestBacklog(t *testing.T) *Memo {
	t.Helper()
	m, err := NewBacklogMemo("clean garage", 45, 180, ImportanceLow, LocationHome, baseDay)
	require.NoError(t, err)
	return m
}

func TestNewDeadlineMemo(t *testing.T) {
	t.Run("seeds a non-decreasing curve from base to five times base", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		st := m.DeadlineState()

		require.Equal(t, 5, st.TotalDays())
		require.Len(t, st.ExpectedDurations, 5)
		require.Len(t, st.ActualDurations, 5)

		assert.Equal(t, 30, st.ExpectedDurations[0])
		assert.Equal(t, 150, st.ExpectedDurations[4])
		for i := 1; i < len(st.ExpectedDurations); i++ {
			assert.GreaterOrEqual(t, st.ExpectedDurations[i], st.ExpectedDurations[i-1])
		}
	})

	t.Run("single-day deadline gets just the base", func(t *testing.T) {
		m := newTestDeadline(t, 0)
		assert.Equal(t, []int{30}, m.DeadlineState().ExpectedDurations)
	})

	t.Run("defaults multiplier to one", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		assert.Equal(t, 1.0, m.DeadlineState().SmoothedMultiplier)
	})

	t.Run("rejects deadline before creation day", func(t *testing.T) {
		_, err := NewDeadlineMemo("late", baseDay.AddDate(0, 0, -1), 30, 120, ImportanceMedium, LocationNone, baseDay)
		assert.ErrorIs(t, err, ErrDeadlineBeforeCreation)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewDeadlineMemo("  ", baseDay, 30, 120, ImportanceMedium, LocationNone, baseDay)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("rejects non-positive session duration", func(t *testing.T) {
		_, err := NewDeadlineMemo("x", baseDay, 0, 120, ImportanceMedium, LocationNone, baseDay)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestNewRoutineMemo(t *testing.T) {
	t.Run("anchors period start", func(t *testing.T) {
		m := newTestRoutine(t, RecurrenceGoal{Count: 3, Period: PeriodWeek})
		// baseDay is a Monday, so the ISO week starts that same day.
		assert.Equal(t, DayOf(baseDay), m.Routine().PeriodStartDate)
	})

	t.Run("requires a goal", func(t *testing.T) {
		_, err := NewRoutineMemo("x", RecurrenceGoal{}, 20, ImportanceMedium, LocationNone, baseDay)
		assert.ErrorIs(t, err, ErrMissingGoal)
	})
}

func TestMemo_ValidateState(t *testing.T) {
	t.Run("detects missing state record", func(t *testing.T) {
		m := newTestBacklog(t)
		m.backlog = nil
		assert.ErrorIs(t, m.ValidateState(), ErrMissingState)
	})

	t.Run("detects curve length drift", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		m.DeadlineState().ActualDurations = m.DeadlineState().ActualDurations[:3]
		assert.ErrorIs(t, m.ValidateState(), ErrMissingState)
	})
}

func TestMemo_Accept(t *testing.T) {
	slot := Slot{Start: baseDay.Add(time.Hour), End: baseDay.Add(2 * time.Hour)}

	t.Run("backlog accept commits a slot and moves lastActivity", func(t *testing.T) {
		m := newTestBacklog(t)
		later := baseDay.Add(time.Hour)

		require.NoError(t, m.Accept(slot, later))

		st := m.Backlog()
		assert.True(t, st.AcceptedToday)
		require.NotNil(t, st.AcceptedSlot)
		assert.Equal(t, slot, *st.AcceptedSlot)
		assert.Equal(t, later.UTC(), m.LastActivity())
	})

	t.Run("deadline accepts accrue multiple slots", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		second := Slot{Start: baseDay.Add(3 * time.Hour), End: baseDay.Add(4 * time.Hour)}

		require.NoError(t, m.Accept(slot, baseDay))
		require.NoError(t, m.Accept(second, baseDay))

		assert.Len(t, m.DeadlineState().AcceptedSlots, 2)
	})

	t.Run("accept after reject is an invalid reaction", func(t *testing.T) {
		m := newTestBacklog(t)
		require.NoError(t, m.Reject(baseDay))

		err := m.Accept(slot, baseDay)
		assert.ErrorIs(t, err, ErrAlreadyRejectedToday)
	})

	t.Run("double accept on routine is an invalid reaction", func(t *testing.T) {
		m := newTestRoutine(t, RecurrenceGoal{Count: 1, Period: PeriodDay})
		require.NoError(t, m.Accept(slot, baseDay))

		err := m.Accept(slot, baseDay)
		assert.ErrorIs(t, err, ErrAlreadyAcceptedToday)
	})
}

func TestMemo_Reject(t *testing.T) {
	slot := Slot{Start: baseDay.Add(time.Hour), End: baseDay.Add(2 * time.Hour)}

	t.Run("reject after accept clears the slot", func(t *testing.T) {
		m := newTestBacklog(t)
		require.NoError(t, m.Accept(slot, baseDay))

		require.NoError(t, m.Reject(baseDay.Add(time.Minute)))

		st := m.Backlog()
		assert.True(t, st.RejectedToday)
		assert.False(t, st.AcceptedToday)
		assert.Nil(t, st.AcceptedSlot)
	})

	t.Run("reject clears accrued deadline slots", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		require.NoError(t, m.Accept(slot, baseDay))

		require.NoError(t, m.Reject(baseDay))

		assert.Empty(t, m.DeadlineState().AcceptedSlots)
		assert.True(t, m.DeadlineState().RejectedToday)
	})

	t.Run("acceptance and rejection are never both set", func(t *testing.T) {
		m := newTestRoutine(t, RecurrenceGoal{Count: 1, Period: PeriodDay})
		require.NoError(t, m.Accept(slot, baseDay))
		require.NoError(t, m.Reject(baseDay))

		st := m.Routine()
		assert.False(t, st.AcceptedToday && st.RejectedToday)
	})
}

func TestMemo_Complete(t *testing.T) {
	t.Run("routine completion increments the period counter", func(t *testing.T) {
		m := newTestRoutine(t, RecurrenceGoal{Count: 3, Period: PeriodWeek})

		require.NoError(t, m.Complete(25, baseDay))

		st := m.Routine()
		assert.Equal(t, 1, st.CompletedCountThisPeriod)
		assert.False(t, st.WasCappedThisPeriod)
		assert.True(t, st.CompletedToday)
		assert.Equal(t, DayOf(baseDay), st.LastCompletedDay)
		assert.Equal(t, 25, st.LastAcceptedDuration)
	})

	t.Run("meeting the goal sets the sticky cap", func(t *testing.T) {
		m := newTestRoutine(t, RecurrenceGoal{Count: 2, Period: PeriodWeek})

		require.NoError(t, m.Complete(20, baseDay))
		require.NoError(t, m.Complete(20, baseDay.AddDate(0, 0, 1)))

		assert.True(t, m.Routine().WasCappedThisPeriod)

		// A completion past the goal still counts but stays capped.
		require.NoError(t, m.Complete(20, baseDay.AddDate(0, 0, 2)))
		assert.Equal(t, 3, m.Routine().CompletedCountThisPeriod)
		assert.True(t, m.Routine().WasCappedThisPeriod)
	})

	t.Run("deadline completion accumulates into the day offset", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		dayTwo := baseDay.AddDate(0, 0, 2)

		require.NoError(t, m.Complete(40, dayTwo))
		require.NoError(t, m.Complete(20, dayTwo))

		assert.Equal(t, 60, m.DeadlineState().ActualDurations[2])
	})

	t.Run("late deadline completion clamps to the final day", func(t *testing.T) {
		m := newTestDeadline(t, 2)

		require.NoError(t, m.Complete(15, baseDay.AddDate(0, 0, 10)))

		assert.Equal(t, 15, m.DeadlineState().ActualDurations[2])
	})

	t.Run("rejects non-positive durations", func(t *testing.T) {
		m := newTestBacklog(t)
		assert.ErrorIs(t, m.Complete(0, baseDay), ErrInvalidDuration)
	})
}

func TestMemo_Undo(t *testing.T) {
	slot := Slot{Start: baseDay.Add(time.Hour), End: baseDay.Add(2 * time.Hour)}

	t.Run("accept then undo restores pre-accept state", func(t *testing.T) {
		m := newTestBacklog(t)
		before := *m.Backlog()

		require.NoError(t, m.Accept(slot, baseDay))
		require.NoError(t, m.Undo(baseDay.Add(time.Minute)))

		after := *m.Backlog()
		// Undo bookkeeping aside, everything observable matches.
		assert.Equal(t, before.AcceptedToday, after.AcceptedToday)
		assert.Equal(t, before.RejectedToday, after.RejectedToday)
		assert.Equal(t, before.AcceptedSlot, after.AcceptedSlot)
		assert.Equal(t, before.LastCompletedDay, after.LastCompletedDay)
		assert.Equal(t, ReactionNone, after.LastReaction)
	})

	t.Run("complete then undo reverses the routine counter", func(t *testing.T) {
		m := newTestRoutine(t, RecurrenceGoal{Count: 1, Period: PeriodDay})

		require.NoError(t, m.Complete(20, baseDay))
		require.True(t, m.Routine().WasCappedThisPeriod)

		require.NoError(t, m.Undo(baseDay.Add(time.Minute)))

		st := m.Routine()
		assert.Equal(t, 0, st.CompletedCountThisPeriod)
		assert.False(t, st.WasCappedThisPeriod)
		assert.False(t, st.CompletedToday)
		assert.True(t, st.LastCompletedDay.IsZero())
	})

	t.Run("complete then undo reverses the deadline actuals", func(t *testing.T) {
		m := newTestDeadline(t, 4)

		require.NoError(t, m.Complete(40, baseDay))
		require.NoError(t, m.Undo(baseDay.Add(time.Minute)))

		assert.Equal(t, 0, m.DeadlineState().ActualDurations[0])
		assert.True(t, m.DeadlineState().LastCompletedDay.IsZero())
	})

	t.Run("undo of a deadline accept drops the newest slot", func(t *testing.T) {
		m := newTestDeadline(t, 4)
		second := Slot{Start: baseDay.Add(3 * time.Hour), End: baseDay.Add(4 * time.Hour)}

		require.NoError(t, m.Accept(slot, baseDay))
		require.NoError(t, m.Accept(second, baseDay))
		require.NoError(t, m.Undo(baseDay))

		require.Len(t, m.DeadlineState().AcceptedSlots, 1)
		assert.Equal(t, slot, m.DeadlineState().AcceptedSlots[0])
	})

	t.Run("same-day undo works west of UTC", func(t *testing.T) {
		// 17:00 at UTC-8 is already 01:00 the next day in UTC; the undo
		// window must follow the caller's calendar day, not UTC's.
		zone := time.FixedZone("UTC-8", -8*3600)
		evening := time.Date(2026, 3, 2, 17, 0, 0, 0, zone)

		m, err := NewBacklogMemo("clean garage", 45, 180, ImportanceLow, LocationHome, evening)
		require.NoError(t, err)

		eveningSlot := Slot{Start: evening.Add(time.Hour), End: evening.Add(2 * time.Hour)}
		require.NoError(t, m.Accept(eveningSlot, evening))

		assert.NoError(t, m.Undo(evening.Add(time.Minute)))
	})

	t.Run("accept then undo is an exact state round trip", func(t *testing.T) {
		m := newTestBacklog(t)
		st := m.Backlog()
		// A history where the undo cache and the last completion diverge.
		st.LastCompletedDay = DayOf(baseDay.AddDate(0, 0, -1))
		st.PreviousLastCompletedDay = DayOf(baseDay.AddDate(0, 0, -3))
		before := *st

		require.NoError(t, m.Accept(slot, baseDay))
		require.NoError(t, m.Undo(baseDay.Add(time.Minute)))

		assert.Equal(t, before, *m.Backlog())
	})

	t.Run("undo after day rollover fails", func(t *testing.T) {
		m := newTestBacklog(t)
		require.NoError(t, m.Accept(slot, baseDay))

		err := m.Undo(baseDay.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrUndoExpired)
	})

	t.Run("undo with nothing to undo fails", func(t *testing.T) {
		m := newTestBacklog(t)
		assert.ErrorIs(t, m.Undo(baseDay), ErrNothingToUndo)
	})

	t.Run("reject is not undoable", func(t *testing.T) {
		m := newTestBacklog(t)
		require.NoError(t, m.Reject(baseDay))

		assert.ErrorIs(t, m.Undo(baseDay), ErrNothingToUndo)
	})
}

func TestPeriodStart(t *testing.T) {
	t.Run("week starts on Monday", func(t *testing.T) {
		thursday := time.Date(2026, 3, 5, 15, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), PeriodWeek.Start(thursday))
	})

	t.Run("month starts on the first", func(t *testing.T) {
		mid := time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), PeriodMonth.Start(mid))
	})

	t.Run("day period spans one day", func(t *testing.T) {
		d := time.Date(2026, 3, 5, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, DayOf(d), PeriodDay.Start(d))
		assert.Equal(t, DayOf(d).AddDate(0, 0, 1), PeriodDay.End(d))
	})
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 3, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
