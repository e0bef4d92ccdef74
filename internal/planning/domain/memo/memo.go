package memo

import (
	"errors"
	"math"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/daybreak/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle             = errors.New("memo title cannot be empty")
	ErrMemoArchived           = errors.New("memo is archived")
	ErrDeadlineBeforeCreation = errors.New("deadline cannot precede creation day")
	ErrMissingGoal            = errors.New("routine memo requires a recurrence goal")
	ErrInvalidDuration        = errors.New("session duration must be positive")
	// ErrMissingState marks a data-integrity fault: the attached state record
	// does not match the memo's type. Scoring excludes such memos instead of
	// failing the whole pass.
	ErrMissingState = errors.New("memo state record does not match memo type")

	ErrAlreadyRejectedToday = errors.New("memo was already rejected today")
	ErrAlreadyAcceptedToday = errors.New("memo was already accepted today")
	ErrUndoExpired          = errors.New("undo is only valid on the day of the reaction")
	ErrNothingToUndo        = errors.New("no reaction to undo")
)

// CurvePeakFactor is the multiple of the base session duration that the
// expected-duration curve reaches on the final day before a deadline.
const CurvePeakFactor = 5

// Memo is a user task tracked by the planning engine. Exactly one
// type-specific state record is attached, matching Type.
type Memo struct {
	sharedDomain.BaseAggregateRoot
	title                 string
	memoType              Type
	genre                 string
	deadline              *time.Time
	recurrenceGoal        *RecurrenceGoal
	location              LocationPreference
	importance            Importance
	sessionDuration       int // ideal minutes per session
	totalDurationExpected int // minutes
	// lastActivity moves only on accept/reject/complete, never on edits or
	// drags. It is the signal the period tracker uses to detect boundaries.
	lastActivity            time.Time
	suggestionAvailableFrom *time.Time
	archived                bool

	routine       *RoutineState
	deadlineState *DeadlineState
	backlog       *BacklogState
}

// NewDeadlineMemo creates a deadline memo and pre-seeds its expected-duration
// curve from the creation day through the deadline day.
func NewDeadlineMemo(title string, deadline time.Time, sessionDuration, totalDurationExpected int, importance Importance, location LocationPreference, now time.Time) (*Memo, error) {
	m, err := newMemo(title, TypeDeadline, sessionDuration, totalDurationExpected, importance, location, now)
	if err != nil {
		return nil, err
	}

	createdDay := DayOf(now)
	deadlineDay := DayOf(deadline)
	if deadlineDay.Before(createdDay) {
		return nil, ErrDeadlineBeforeCreation
	}

	m.deadline = &deadlineDay
	m.deadlineState = &DeadlineState{
		CreatedDay:         createdDay,
		DeadlineDay:        deadlineDay,
		SmoothedMultiplier: 1.0,
	}
	totalDays := m.deadlineState.TotalDays()
	m.deadlineState.ActualDurations = make([]int, totalDays)
	m.deadlineState.ExpectedDurations = seedExpectedCurve(sessionDuration, totalDays)

	m.AddDomainEvent(NewMemoCreated(m))
	return m, nil
}

// NewRoutineMemo creates a routine memo with a recurrence goal.
func NewRoutineMemo(title string, goal RecurrenceGoal, sessionDuration int, importance Importance, location LocationPreference, now time.Time) (*Memo, error) {
	if goal.Count <= 0 || !goal.Period.IsValid() {
		return nil, ErrMissingGoal
	}
	m, err := newMemo(title, TypeRoutine, sessionDuration, sessionDuration*goal.Count, importance, location, now)
	if err != nil {
		return nil, err
	}

	m.recurrenceGoal = &goal
	m.routine = &RoutineState{
		PeriodStartDate: goal.Period.Start(now),
	}

	m.AddDomainEvent(NewMemoCreated(m))
	return m, nil
}

// NewBacklogMemo creates a backlog memo with no deadline and no goal.
func NewBacklogMemo(title string, sessionDuration, totalDurationExpected int, importance Importance, location LocationPreference, now time.Time) (*Memo, error) {
	m, err := newMemo(title, TypeBacklog, sessionDuration, totalDurationExpected, importance, location, now)
	if err != nil {
		return nil, err
	}

	m.backlog = &BacklogState{}

	m.AddDomainEvent(NewMemoCreated(m))
	return m, nil
}

func newMemo(title string, memoType Type, sessionDuration, totalDurationExpected int, importance Importance, location LocationPreference, now time.Time) (*Memo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if sessionDuration <= 0 {
		return nil, ErrInvalidDuration
	}
	if !importance.IsValid() {
		importance = ImportanceMedium
	}
	if !location.IsValid() {
		location = LocationNone
	}

	return &Memo{
		BaseAggregateRoot:     sharedDomain.NewBaseAggregateRootFrom(sharedDomain.NewBaseEntityAt(now)),
		title:                 title,
		memoType:              memoType,
		location:              location,
		importance:            importance,
		sessionDuration:       sessionDuration,
		totalDurationExpected: totalDurationExpected,
		lastActivity:          now,
	}, nil
}

// seedExpectedCurve builds the monotonically non-decreasing curve from the
// base session duration on day 0 up to CurvePeakFactor times it on the final
// day. A one-day deadline just gets the base.
func seedExpectedCurve(base, totalDays int) []int {
	curve := make([]int, totalDays)
	if totalDays == 1 {
		curve[0] = base
		return curve
	}
	span := float64(CurvePeakFactor-1) * float64(base)
	for i := range curve {
		frac := float64(i) / float64(totalDays-1)
		curve[i] = base + int(math.Round(span*frac))
	}
	return curve
}

// Getters
func (m *Memo) Title() string                  { return m.title }
func (m *Memo) Type() Type                     { return m.memoType }
func (m *Memo) Genre() string                  { return m.genre }
func (m *Memo) Deadline() *time.Time           { return m.deadline }
func (m *Memo) Goal() *RecurrenceGoal          { return m.recurrenceGoal }
func (m *Memo) Location() LocationPreference   { return m.location }
func (m *Memo) Importance() Importance         { return m.importance }
func (m *Memo) SessionDuration() int           { return m.sessionDuration }
func (m *Memo) TotalDurationExpected() int     { return m.totalDurationExpected }
func (m *Memo) LastActivity() time.Time        { return m.lastActivity }
func (m *Memo) AvailableFrom() *time.Time      { return m.suggestionAvailableFrom }
func (m *Memo) IsArchived() bool               { return m.archived }
func (m *Memo) Routine() *RoutineState         { return m.routine }
func (m *Memo) DeadlineState() *DeadlineState  { return m.deadlineState }
func (m *Memo) Backlog() *BacklogState         { return m.backlog }

// ValidateState checks that the attached state record matches the memo type.
func (m *Memo) ValidateState() error {
	switch m.memoType {
	case TypeRoutine:
		if m.routine == nil {
			return ErrMissingState
		}
	case TypeDeadline:
		if m.deadlineState == nil {
			return ErrMissingState
		}
		if len(m.deadlineState.ActualDurations) != m.deadlineState.TotalDays() ||
			len(m.deadlineState.ExpectedDurations) != m.deadlineState.TotalDays() {
			return ErrMissingState
		}
	case TypeBacklog:
		if m.backlog == nil {
			return ErrMissingState
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// SetTitle updates the title. Edits never move lastActivity.
func (m *Memo) SetTitle(title string) error {
	if m.archived {
		return ErrMemoArchived
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	m.title = title
	m.Touch()
	return nil
}

// SetGenre records the enrichment service's classification.
func (m *Memo) SetGenre(genre string) {
	m.genre = strings.TrimSpace(genre)
	m.Touch()
}

// SetImportance updates the importance level.
func (m *Memo) SetImportance(importance Importance) error {
	if !importance.IsValid() {
		return ErrInvalidImportance
	}
	m.importance = importance
	m.Touch()
	return nil
}

// SetLocation updates the location preference.
func (m *Memo) SetLocation(location LocationPreference) {
	if location.IsValid() {
		m.location = location
		m.Touch()
	}
}

// SetSessionDuration updates the ideal minutes per session. The deadline
// curve keeps its original seed: baseDuration is the user's first estimate
// and stays the shrink floor.
func (m *Memo) SetSessionDuration(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidDuration
	}
	m.sessionDuration = minutes
	m.Touch()
	return nil
}

// SetTotalDurationExpected updates the total expected minutes of work.
func (m *Memo) SetTotalDurationExpected(minutes int) {
	if minutes > 0 {
		m.totalDurationExpected = minutes
		m.Touch()
	}
}

// SetAvailableFrom delays suggestion visibility, e.g. for event-linked memos.
func (m *Memo) SetAvailableFrom(t *time.Time) {
	m.suggestionAvailableFrom = t
	m.Touch()
}

// Archive removes the memo from scoring without deleting its history.
func (m *Memo) Archive() {
	if !m.archived {
		m.archived = true
		m.Touch()
	}
}

// Accept commits the memo to a working slot today.
func (m *Memo) Accept(slot Slot, now time.Time) error {
	if m.archived {
		return ErrMemoArchived
	}
	if err := m.ValidateState(); err != nil {
		return err
	}

	switch m.memoType {
	case TypeRoutine:
		st := m.routine
		if st.RejectedToday {
			return ErrAlreadyRejectedToday
		}
		if st.AcceptedToday {
			return ErrAlreadyAcceptedToday
		}
		st.AcceptedToday = true
		st.AcceptedSlot = &slot
		st.LastReaction = ReactionAccepted
	case TypeDeadline:
		st := m.deadlineState
		if st.RejectedToday {
			return ErrAlreadyRejectedToday
		}
		// Deadline memos may accrue several sessions before the deadline.
		st.AcceptedSlots = append(st.AcceptedSlots, slot)
		st.LastReaction = ReactionAccepted
	case TypeBacklog:
		st := m.backlog
		if st.RejectedToday {
			return ErrAlreadyRejectedToday
		}
		if st.AcceptedToday {
			return ErrAlreadyAcceptedToday
		}
		st.AcceptedToday = true
		st.AcceptedSlot = &slot
		st.LastReaction = ReactionAccepted
	}

	m.touchActivity(now)
	m.AddDomainEvent(NewMemoAccepted(m, slot))
	return nil
}

// Reject settles the memo for the day. Rejecting after an accept clears the
// committed slot. Rejection is not undoable.
func (m *Memo) Reject(now time.Time) error {
	if m.archived {
		return ErrMemoArchived
	}
	if err := m.ValidateState(); err != nil {
		return err
	}

	switch m.memoType {
	case TypeRoutine:
		st := m.routine
		st.RejectedToday = true
		st.AcceptedToday = false
		st.AcceptedSlot = nil
		st.LastReaction = ReactionNone
	case TypeDeadline:
		st := m.deadlineState
		st.RejectedToday = true
		st.AcceptedSlots = nil
		st.LastReaction = ReactionNone
	case TypeBacklog:
		st := m.backlog
		st.RejectedToday = true
		st.AcceptedToday = false
		st.AcceptedSlot = nil
		st.LastReaction = ReactionNone
	}

	m.touchActivity(now)
	m.AddDomainEvent(NewMemoRejected(m))
	return nil
}

// Complete logs a finished working session of actualMinutes.
func (m *Memo) Complete(actualMinutes int, now time.Time) error {
	if m.archived {
		return ErrMemoArchived
	}
	if actualMinutes <= 0 {
		return ErrInvalidDuration
	}
	if err := m.ValidateState(); err != nil {
		return err
	}

	today := DayOf(now)

	switch m.memoType {
	case TypeRoutine:
		st := m.routine
		st.PreviousLastCompletedDay = st.LastCompletedDay
		st.PreviousWasCapped = st.WasCappedThisPeriod
		st.CompletedCountThisPeriod++
		if st.CompletedCountThisPeriod >= m.recurrenceGoal.Count {
			st.WasCappedThisPeriod = true
		}
		st.CompletedToday = true
		st.LastCompletedDay = today
		st.LastAcceptedDuration = actualMinutes
		st.LastCompletedDuration = actualMinutes
		st.LastReaction = ReactionCompleted
	case TypeDeadline:
		st := m.deadlineState
		st.PreviousLastCompletedDay = st.LastCompletedDay
		st.ActualDurations[st.DayOffset(today)] += actualMinutes
		st.LastCompletedDay = today
		st.LastCompletedDuration = actualMinutes
		st.LastReaction = ReactionCompleted
	case TypeBacklog:
		st := m.backlog
		st.PreviousLastCompletedDay = st.LastCompletedDay
		st.LastCompletedDay = today
		st.LastAcceptedDuration = actualMinutes
		st.LastCompletedDuration = actualMinutes
		st.LastReaction = ReactionCompleted
	}

	m.touchActivity(now)
	m.AddDomainEvent(NewMemoCompleted(m, actualMinutes))
	return nil
}

// Undo reverses the most recent Accept or Complete. It is a same-day-only
// operation: after a day rollover it fails with ErrUndoExpired.
func (m *Memo) Undo(now time.Time) error {
	if m.archived {
		return ErrMemoArchived
	}
	if err := m.ValidateState(); err != nil {
		return err
	}
	if !SameDay(m.lastActivity, now) {
		return ErrUndoExpired
	}

	switch m.memoType {
	case TypeRoutine:
		st := m.routine
		switch st.LastReaction {
		case ReactionAccepted:
			st.AcceptedToday = false
			st.AcceptedSlot = nil
		case ReactionCompleted:
			st.CompletedCountThisPeriod--
			st.WasCappedThisPeriod = st.PreviousWasCapped
			st.CompletedToday = false
			st.LastCompletedDay = st.PreviousLastCompletedDay
		default:
			return ErrNothingToUndo
		}
		st.LastReaction = ReactionNone
	case TypeDeadline:
		st := m.deadlineState
		switch st.LastReaction {
		case ReactionAccepted:
			if n := len(st.AcceptedSlots); n > 0 {
				st.AcceptedSlots = st.AcceptedSlots[:n-1]
			}
		case ReactionCompleted:
			offset := st.DayOffset(st.LastCompletedDay)
			st.ActualDurations[offset] -= st.LastCompletedDuration
			if st.ActualDurations[offset] < 0 {
				st.ActualDurations[offset] = 0
			}
			st.LastCompletedDay = st.PreviousLastCompletedDay
		default:
			return ErrNothingToUndo
		}
		st.LastReaction = ReactionNone
	case TypeBacklog:
		st := m.backlog
		switch st.LastReaction {
		case ReactionAccepted:
			st.AcceptedToday = false
			st.AcceptedSlot = nil
		case ReactionCompleted:
			st.LastCompletedDay = st.PreviousLastCompletedDay
		default:
			return ErrNothingToUndo
		}
		st.LastReaction = ReactionNone
	}

	m.AddDomainEvent(NewMemoReactionUndone(m))
	return nil
}

// touchActivity keeps the reaction instant in the caller's zone: day-boundary
// checks (undo, rollover) compare calendar days, and normalizing to UTC would
// shift an evening reaction onto the next day for users west of UTC.
func (m *Memo) touchActivity(now time.Time) {
	m.lastActivity = now
	m.Touch()
}

// RehydrateMemo recreates a memo from persisted state without generating events.
func RehydrateMemo(
	id uuid.UUID,
	title string,
	memoType Type,
	genre string,
	deadline *time.Time,
	goal *RecurrenceGoal,
	location LocationPreference,
	importance Importance,
	sessionDuration int,
	totalDurationExpected int,
	lastActivity time.Time,
	availableFrom *time.Time,
	archived bool,
	createdAt, updatedAt time.Time,
	routine *RoutineState,
	deadlineState *DeadlineState,
	backlog *BacklogState,
) *Memo {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Memo{
		BaseAggregateRoot:       sharedDomain.RehydrateBaseAggregateRoot(entity),
		title:                   title,
		memoType:                memoType,
		genre:                   genre,
		deadline:                deadline,
		recurrenceGoal:          goal,
		location:                location,
		importance:              importance,
		sessionDuration:         sessionDuration,
		totalDurationExpected:   totalDurationExpected,
		lastActivity:            lastActivity,
		suggestionAvailableFrom: availableFrom,
		archived:                archived,
		routine:                 routine,
		deadlineState:           deadlineState,
		backlog:                 backlog,
	}
}
