// Package application holds the calendar context's services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/calendar/domain"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/schedule"
)

// TimetableConfig bounds the schedulable part of a day.
type TimetableConfig struct {
	// DayStartHour and DayEndHour delimit the working window; gaps are only
	// derived inside it.
	DayStartHour int
	DayEndHour   int
	// MinGapMinutes drops slivers too short to schedule anything into.
	MinGapMinutes int
}

// DefaultTimetableConfig returns a sensible default configuration.
func DefaultTimetableConfig() TimetableConfig {
	return TimetableConfig{
		DayStartHour:  8,
		DayEndHour:    22,
		MinGapMinutes: 15,
	}
}

// TimetableService derives the day's free gaps from its calendar events.
// It is the calendar context's side of the planning context's GapProvider port.
type TimetableService struct {
	events domain.EventRepository
	config TimetableConfig
	logger *slog.Logger
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(events domain.EventRepository, config TimetableConfig, logger *slog.Logger) *TimetableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimetableService{events: events, config: config, logger: logger}
}

// GapsForDay returns the free windows of the given day, ordered by start.
// Each gap carries a best-effort location derived from the events around it:
// a bordering event's label when unambiguous, unknown otherwise.
func (s *TimetableService) GapsForDay(ctx context.Context, day time.Time) ([]schedule.Gap, error) {
	events, err := s.events.FindByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	windowStart := time.Date(y, m, d, s.config.DayStartHour, 0, 0, 0, time.UTC)
	windowEnd := time.Date(y, m, d, s.config.DayEndHour, 0, 0, 0, time.UTC)

	busy := mergeBusy(events, windowStart, windowEnd)

	var gaps []schedule.Gap
	cursor := windowStart
	for i, block := range busy {
		if block.start.After(cursor) {
			gaps = s.appendGap(gaps, cursor, block.start, previousBlock(busy, i), &busy[i], day)
		}
		if block.end.After(cursor) {
			cursor = block.end
		}
	}
	if windowEnd.After(cursor) {
		var last *busyBlock
		if len(busy) > 0 {
			last = &busy[len(busy)-1]
		}
		gaps = s.appendGap(gaps, cursor, windowEnd, last, nil, day)
	}

	s.logger.Debug("derived timetable gaps", "day", day.Format("2006-01-02"), "events", len(events), "gaps", len(gaps))
	return gaps, nil
}

type busyBlock struct {
	start    time.Time
	end      time.Time
	location domain.LocationLabel
}

// mergeBusy clips events to the working window, sorts them, and merges
// overlaps. A merged block keeps its label only when all members agree.
func mergeBusy(events []*domain.Event, windowStart, windowEnd time.Time) []busyBlock {
	blocks := make([]busyBlock, 0, len(events))
	for _, e := range events {
		start, end := e.Start(), e.End()
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		if !end.After(start) {
			continue
		}
		blocks = append(blocks, busyBlock{start: start, end: end, location: e.Location().Normalize()})
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].start.Before(blocks[j].start) })

	var merged []busyBlock
	for _, b := range blocks {
		if len(merged) == 0 || b.start.After(merged[len(merged)-1].end) {
			merged = append(merged, b)
			continue
		}
		last := &merged[len(merged)-1]
		if b.end.After(last.end) {
			last.end = b.end
		}
		if b.location != last.location {
			last.location = ""
		}
	}
	return merged
}

func previousBlock(busy []busyBlock, i int) *busyBlock {
	if i == 0 {
		return nil
	}
	return &busy[i-1]
}

func (s *TimetableService) appendGap(gaps []schedule.Gap, start, end time.Time, before, after *busyBlock, day time.Time) []schedule.Gap {
	if int(end.Sub(start).Minutes()) < s.config.MinGapMinutes {
		return gaps
	}

	id := fmt.Sprintf("%s-%s", day.Format("2006-01-02"), start.Format("1504"))
	gap, err := schedule.NewGap(id, start, end, gapLocation(before, after))
	if err != nil {
		return gaps
	}
	return append(gaps, gap)
}

// gapLocation infers where the user will be during a gap from the events
// bordering it. Agreeing neighbors decide; a lone labeled neighbor decides;
// disagreement or no signal means unknown.
func gapLocation(before, after *busyBlock) schedule.GapLocation {
	var labels []domain.LocationLabel
	if before != nil && before.location != "" {
		labels = append(labels, before.location)
	}
	if after != nil && after.location != "" {
		labels = append(labels, after.location)
	}

	if len(labels) == 0 {
		return schedule.GapLocationUnknown
	}
	if len(labels) == 2 && labels[0] != labels[1] {
		return schedule.GapLocationUnknown
	}

	switch labels[0] {
	case domain.LocationLabelHome:
		return schedule.GapLocationHome
	case domain.LocationLabelWorkplace:
		return schedule.GapLocationWorkplace
	default:
		return schedule.GapLocationOther
	}
}
