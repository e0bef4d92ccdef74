package memo

import "time"

// Reaction tags the most recent undoable user action on a state record.
// Cleared on day rollover, which is what makes Undo same-day-only.
type Reaction string

const (
	ReactionNone      Reaction = ""
	ReactionAccepted  Reaction = "accepted"
	ReactionCompleted Reaction = "completed"
)

// RoutineState is the per-period bookkeeping attached to a routine memo.
type RoutineState struct {
	AcceptedToday           bool
	CompletedToday          bool
	RejectedToday           bool
	CompletedCountThisPeriod int
	// WasCappedThisPeriod is sticky: once the period's goal is met, later
	// completions still count but the memo stays visually capped.
	WasCappedThisPeriod bool
	PeriodStartDate     time.Time
	LastCompletedDay    time.Time
	// PreviousLastCompletedDay caches the pre-reaction value for Undo.
	PreviousLastCompletedDay time.Time
	AcceptedSlot             *Slot
	// LastAcceptedDuration feeds the next session's ideal-duration guess.
	LastAcceptedDuration int

	LastReaction          Reaction
	LastCompletedDuration int
	PreviousWasCapped     bool
}

// DeadlineState is the duration-curve bookkeeping attached to a deadline memo.
// ActualDurations and ExpectedDurations are indexed by day-offset from
// CreatedDay and always hold TotalDays entries.
type DeadlineState struct {
	CreatedDay  time.Time
	DeadlineDay time.Time

	ActualDurations   []int
	ExpectedDurations []int

	SmoothedMultiplier float64

	RejectedToday            bool
	AcceptedSlots            []Slot
	LastCompletedDay         time.Time
	PreviousLastCompletedDay time.Time

	LastReaction          Reaction
	LastCompletedDuration int
}

// TotalDays is the number of entries in each duration array.
func (s *DeadlineState) TotalDays() int {
	return DaysBetween(s.CreatedDay, s.DeadlineDay) + 1
}

// DayOffset returns the array index for a given day, clamped into range so
// late completions land on the final day rather than out of bounds.
func (s *DeadlineState) DayOffset(t time.Time) int {
	offset := DaysBetween(s.CreatedDay, t)
	if offset < 0 {
		return 0
	}
	if max := s.TotalDays() - 1; offset > max {
		return max
	}
	return offset
}

// AcceptedToday reports whether any accepted slot falls on the given day.
func (s *DeadlineState) AcceptedToday(now time.Time) bool {
	for _, slot := range s.AcceptedSlots {
		if SameDay(slot.Start, now) {
			return true
		}
	}
	return false
}

// BacklogState is the bookkeeping attached to a backlog memo.
type BacklogState struct {
	AcceptedToday            bool
	RejectedToday            bool
	LastCompletedDay         time.Time
	PreviousLastCompletedDay time.Time
	AcceptedSlot             *Slot
	LastAcceptedDuration     int

	LastReaction          Reaction
	LastCompletedDuration int
}
