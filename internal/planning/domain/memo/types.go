package memo

import (
	"errors"
	"strings"
	"time"
)

// Type discriminates the three kinds of tracked tasks. The set is closed:
// scoring, rollover and reaction behavior all branch on it.
type Type string

const (
	TypeDeadline Type = "deadline"
	TypeBacklog  Type = "backlog"
	TypeRoutine  Type = "routine"
)

var ErrInvalidType = errors.New("invalid memo type")

// ParseType creates a Type from a string.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case TypeDeadline:
		return TypeDeadline, nil
	case TypeBacklog:
		return TypeBacklog, nil
	case TypeRoutine:
		return TypeRoutine, nil
	default:
		return "", ErrInvalidType
	}
}

// IsValid returns true if the type is a known value.
func (t Type) IsValid() bool {
	switch t {
	case TypeDeadline, TypeBacklog, TypeRoutine:
		return true
	default:
		return false
	}
}

// Importance represents how much a memo matters to the user.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

var ErrInvalidImportance = errors.New("invalid importance value")

// ParseImportance creates an Importance from a string.
func ParseImportance(s string) (Importance, error) {
	switch Importance(strings.ToLower(s)) {
	case ImportanceLow:
		return ImportanceLow, nil
	case ImportanceMedium:
		return ImportanceMedium, nil
	case ImportanceHigh:
		return ImportanceHigh, nil
	default:
		return "", ErrInvalidImportance
	}
}

// Score maps importance onto the discrete scale used for suggestion ordering.
func (i Importance) Score() float64 {
	switch i {
	case ImportanceMedium:
		return 0.2
	case ImportanceHigh:
		return 0.4
	default:
		return 0.0
	}
}

// IsValid returns true if the importance is a known value.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	default:
		return false
	}
}

// LocationPreference is where the user wants to work on a memo.
type LocationPreference string

const (
	LocationHome      LocationPreference = "home"
	LocationWorkplace LocationPreference = "workplace"
	LocationNone      LocationPreference = "none"
)

// IsValid returns true if the preference is a known value.
func (l LocationPreference) IsValid() bool {
	switch l {
	case LocationHome, LocationWorkplace, LocationNone:
		return true
	default:
		return false
	}
}

// Period is the window over which a routine's completion goal is tracked.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

var ErrInvalidPeriod = errors.New("invalid recurrence period")

// ParsePeriod creates a Period from a string.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(s)) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// IsValid returns true if the period is a known value.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// Start returns the first instant of the period containing t.
// Weeks are ISO weeks starting on Monday.
func (p Period) Start(t time.Time) time.Time {
	day := DayOf(t)
	switch p {
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

// End returns the first instant of the next period after t.
func (p Period) End(t time.Time) time.Time {
	start := p.Start(t)
	switch p {
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// RecurrenceGoal is how often a routine memo should be completed.
type RecurrenceGoal struct {
	Count  int
	Period Period
}

// Slot is a committed working window within a day.
type Slot struct {
	Start time.Time
	End   time.Time
}

// DayOf truncates a timestamp to midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysBetween counts whole calendar days from a to b (negative if b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}
