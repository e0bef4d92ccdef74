package services

import (
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
)

// NeedCalculator computes a unitless urgency value per memo, continuous and
// monotonic in urgency, comparable across the three memo types. A settled
// memo (accepted or rejected today) scores zero.
type NeedCalculator struct {
	config Config
}

// NewNeedCalculator creates a calculator with the given configuration.
func NewNeedCalculator(config Config) *NeedCalculator {
	return &NeedCalculator{config: config}
}

// Need returns the memo's urgency at "now". It assumes the period tracker
// already ran for this instant.
func (c *NeedCalculator) Need(m *memo.Memo, now time.Time) float64 {
	if m.IsArchived() {
		return 0
	}
	if err := m.ValidateState(); err != nil {
		return 0
	}
	if from := m.AvailableFrom(); from != nil && now.Before(*from) {
		return 0
	}

	switch m.Type() {
	case memo.TypeDeadline:
		return c.deadlineNeed(m, now)
	case memo.TypeRoutine:
		return c.routineNeed(m, now)
	default:
		return c.backlogNeed(m, now)
	}
}

// deadlineNeed rises as remaining work crowds the remaining plausible free
// time, crossing the mandatory threshold exactly when the work no longer
// fits, and unconditionally on the deadline day itself. A day with a slot
// already committed is settled; the slot surfaces via the state record.
func (c *NeedCalculator) deadlineNeed(m *memo.Memo, now time.Time) float64 {
	st := m.DeadlineState()
	if st.RejectedToday || st.AcceptedToday(now) {
		return 0
	}

	today := memo.DayOf(now)

	remainingWork := m.TotalDurationExpected()
	for _, logged := range st.ActualDurations {
		remainingWork -= logged
	}
	if remainingWork <= 0 {
		return 0
	}

	remainingDays := memo.DaysBetween(today, st.DeadlineDay) + 1
	if remainingDays <= 0 {
		// Past the deadline: still mandatory, scaled by how overdue.
		overdueDays := -memo.DaysBetween(today, st.DeadlineDay)
		return clamp(c.config.MandatoryThreshold+0.1*float64(overdueDays), 0, c.config.NeedCap)
	}

	capacity := remainingDays * c.config.PlausibleDailyMinutes
	pressure := float64(remainingWork) / float64(capacity)

	span := c.config.MandatoryThreshold - c.config.DeadlineBaseNeed
	need := c.config.DeadlineBaseNeed + span*pressure
	if memo.SameDay(today, st.DeadlineDay) && need < c.config.MandatoryThreshold {
		need = c.config.MandatoryThreshold
	}
	return clamp(need, 0, c.config.NeedCap)
}

// routineNeed rises with the completion shortfall against the days left in
// the period: owing one completion per remaining day is exactly mandatory.
// A completion alone does not settle the day: a multi-per-day goal keeps
// owing sessions until the period goal is capped.
func (c *NeedCalculator) routineNeed(m *memo.Memo, now time.Time) float64 {
	st := m.Routine()
	if st.AcceptedToday || st.RejectedToday {
		return 0
	}

	goal := m.Goal()
	shortfall := goal.Count - st.CompletedCountThisPeriod
	if shortfall <= 0 || st.WasCappedThisPeriod {
		return 0
	}

	periodEnd := goal.Period.End(now)
	remainingDays := memo.DaysBetween(memo.DayOf(now), periodEnd)
	if remainingDays < 1 {
		remainingDays = 1
	}

	span := c.config.MandatoryThreshold - c.config.RoutineBaseNeed
	need := c.config.RoutineBaseNeed + span*(float64(shortfall)/float64(remainingDays))
	return clamp(need, 0, c.config.NeedCap)
}

// backlogNeed grows with time since the memo was last touched. There is no
// hard deadline, so it is capped strictly below the mandatory threshold.
func (c *NeedCalculator) backlogNeed(m *memo.Memo, now time.Time) float64 {
	st := m.Backlog()
	if st.AcceptedToday || st.RejectedToday {
		return 0
	}

	idleSince := m.LastActivity()
	if idleSince.IsZero() {
		idleSince = m.CreatedAt()
	}
	idleDays := memo.DaysBetween(idleSince, now)
	if idleDays < 0 {
		idleDays = 0
	}

	need := c.config.BacklogBaseNeed + c.config.BacklogRampPerDay*float64(idleDays)
	return clamp(need, 0, c.config.BacklogNeedCap)
}
