package services

import (
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
)

// PeriodTracker detects day and goal-period boundaries for a memo and resets
// the relevant counters in place. It never runs on its own schedule: it is
// invoked lazily whenever a memo is read for scoring, and in bulk by the
// day-boundary trigger. Rollover is idempotent for a fixed "now"; callers
// persist the mutated state.
type PeriodTracker struct{}

// NewPeriodTracker creates a new tracker.
func NewPeriodTracker() *PeriodTracker {
	return &PeriodTracker{}
}

// Rollover applies any pending day/period resets and reports whether the
// memo's state changed. lastActivity is deliberately left alone: only user
// reactions move it, which is what makes a second call with the same "now"
// a no-op.
func (t *PeriodTracker) Rollover(m *memo.Memo, now time.Time) bool {
	if err := m.ValidateState(); err != nil {
		return false
	}

	dayAdvanced := !memo.SameDay(m.LastActivity(), now) && now.After(m.LastActivity())

	switch m.Type() {
	case memo.TypeRoutine:
		return t.rolloverRoutine(m, now, dayAdvanced)
	case memo.TypeDeadline:
		return t.rolloverDeadline(m, now, dayAdvanced)
	default:
		return t.rolloverBacklog(m, now, dayAdvanced)
	}
}

func (t *PeriodTracker) rolloverRoutine(m *memo.Memo, now time.Time, dayAdvanced bool) bool {
	st := m.Routine()
	changed := false

	if dayAdvanced {
		if st.AcceptedToday || st.RejectedToday || st.CompletedToday || st.AcceptedSlot != nil || st.LastReaction != memo.ReactionNone {
			st.AcceptedToday = false
			st.RejectedToday = false
			st.CompletedToday = false
			st.AcceptedSlot = nil
			st.LastReaction = memo.ReactionNone
			changed = true
		}
	}

	currentStart := m.Goal().Period.Start(now)
	if st.PeriodStartDate.Before(currentStart) {
		st.CompletedCountThisPeriod = 0
		st.WasCappedThisPeriod = false
		st.PreviousWasCapped = false
		st.PeriodStartDate = currentStart
		changed = true
	}

	return changed
}

func (t *PeriodTracker) rolloverDeadline(m *memo.Memo, now time.Time, dayAdvanced bool) bool {
	st := m.DeadlineState()
	changed := false

	if dayAdvanced {
		if st.RejectedToday || st.LastReaction != memo.ReactionNone {
			st.RejectedToday = false
			st.LastReaction = memo.ReactionNone
			changed = true
		}
		// Committed sessions survive day boundaries mid-deadline; they are
		// only discarded once the deadline itself has passed.
		if memo.DayOf(now).After(st.DeadlineDay) && len(st.AcceptedSlots) > 0 {
			st.AcceptedSlots = nil
			changed = true
		}
	}

	return changed
}

func (t *PeriodTracker) rolloverBacklog(m *memo.Memo, now time.Time, dayAdvanced bool) bool {
	st := m.Backlog()
	changed := false

	if dayAdvanced {
		if st.AcceptedToday || st.RejectedToday || st.AcceptedSlot != nil || st.LastReaction != memo.ReactionNone {
			st.AcceptedToday = false
			st.RejectedToday = false
			st.AcceptedSlot = nil
			st.LastReaction = memo.ReactionNone
			changed = true
		}
	}

	return changed
}
