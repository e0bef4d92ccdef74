package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/calendar/domain"
	"github.com/google/uuid"
)

// GapInvalidator drops cached gap derivations for a day. A nil invalidator
// means no cache is wired.
type GapInvalidator interface {
	Invalidate(ctx context.Context, day time.Time)
}

// EventService is the write side of the calendar context. Every mutation
// invalidates the gap cache for the affected days.
type EventService struct {
	events domain.EventRepository
	cache  GapInvalidator
	logger *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(events domain.EventRepository, cache GapInvalidator, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{events: events, cache: cache, logger: logger}
}

// AddEvent creates and persists an event.
func (s *EventService) AddEvent(ctx context.Context, title string, start, end time.Time, location domain.LocationLabel) (*domain.Event, error) {
	event, err := domain.NewEvent(title, start, end, location)
	if err != nil {
		return nil, err
	}
	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateSpan(ctx, event.Start(), event.End())
	s.logger.Info("event added", "event_id", event.ID(), "title", event.Title())
	return event, nil
}

// EventsForDay lists the events overlapping a day.
func (s *EventService) EventsForDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	return s.events.FindByDay(ctx, day)
}

// RemoveEvent deletes an event and invalidates the days it covered.
func (s *EventService) RemoveEvent(ctx context.Context, id uuid.UUID, day time.Time) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSpan(ctx, day, day)
	return nil
}

func (s *EventService) invalidateSpan(ctx context.Context, start, end time.Time) {
	if s.cache == nil {
		return
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		s.cache.Invalidate(ctx, day)
	}
}
