// Package domain defines the calendar context: the busy blocks of a day and
// the repository that stores them. The planning context never sees events,
// only the free gaps derived between them.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/daybreak/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyEventTitle  = errors.New("event title cannot be empty")
	ErrInvalidEventSpan = errors.New("event end must be after start")
)

// LocationLabel is the user-facing place tag on an event. Free-form labels
// are kept verbatim; Normalize maps them onto the coarse buckets gap
// derivation understands.
type LocationLabel string

const (
	LocationLabelHome      LocationLabel = "home"
	LocationLabelWorkplace LocationLabel = "workplace"
)

// Normalize maps an arbitrary label to home, workplace, other, or "" when
// there is no label at all.
func (l LocationLabel) Normalize() LocationLabel {
	trimmed := LocationLabel(strings.ToLower(strings.TrimSpace(string(l))))
	switch trimmed {
	case "", LocationLabelHome, LocationLabelWorkplace:
		return trimmed
	case "office", "work":
		return LocationLabelWorkplace
	case "house", "apartment":
		return LocationLabelHome
	default:
		return "other"
	}
}

// Event is a committed calendar entry that blocks scheduling time.
type Event struct {
	sharedDomain.BaseEntity
	title    string
	start    time.Time
	end      time.Time
	location LocationLabel
}

// NewEvent creates a validated event.
func NewEvent(title string, start, end time.Time, location LocationLabel) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyEventTitle
	}
	if !end.After(start) {
		return nil, ErrInvalidEventSpan
	}
	return &Event{
		BaseEntity: sharedDomain.NewBaseEntity(),
		title:      title,
		start:      start.UTC(),
		end:        end.UTC(),
		location:   location,
	}, nil
}

func (e *Event) Title() string           { return e.title }
func (e *Event) Start() time.Time        { return e.start }
func (e *Event) End() time.Time          { return e.end }
func (e *Event) Location() LocationLabel { return e.location }

// OverlapsDay reports whether any part of the event falls on the given day.
func (e *Event) OverlapsDay(day time.Time) bool {
	y, m, d := day.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	return e.start.Before(dayEnd) && e.end.After(dayStart)
}

// RehydrateEvent recreates an event from persisted state.
func RehydrateEvent(id uuid.UUID, title string, start, end time.Time, location LocationLabel, createdAt, updatedAt time.Time) *Event {
	return &Event{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		title:      title,
		start:      start,
		end:        end,
		location:   location,
	}
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Save(ctx context.Context, event *Event) error
	FindByDay(ctx context.Context, day time.Time) ([]*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
