// Package schedule holds the ephemeral value types of a single scheduling
// pass: the day's free-time gaps and the scored suggestions competing for
// them. Nothing in this package is persisted.
package schedule

import (
	"errors"
	"sort"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
)

var (
	ErrInvalidGapRange = errors.New("gap end must be after start")
	ErrOverlappingGaps = errors.New("gaps must be ordered and non-overlapping")
)

// GapLocation is the best-effort location affinity of a free window,
// derived from the calendar events around it.
type GapLocation string

const (
	GapLocationHome      GapLocation = "home"
	GapLocationWorkplace GapLocation = "workplace"
	GapLocationOther     GapLocation = "other"
	GapLocationUnknown   GapLocation = "unknown"
)

// Gap is a free time window in the day's calendar.
type Gap struct {
	ID       string
	Start    time.Time
	End      time.Time
	Location GapLocation
}

// NewGap creates a validated gap.
func NewGap(id string, start, end time.Time, location GapLocation) (Gap, error) {
	if !end.After(start) {
		return Gap{}, ErrInvalidGapRange
	}
	if location == "" {
		location = GapLocationUnknown
	}
	return Gap{ID: id, Start: start, End: end, Location: location}, nil
}

// Minutes returns the gap's duration in whole minutes.
func (g Gap) Minutes() int {
	return int(g.End.Sub(g.Start).Minutes())
}

// Accommodates reports whether a memo with the given location preference may
// be placed here. Compatible means equal, or either side carries no signal:
// "none" on the memo, "unknown" on the gap. A known non-matching location
// ("other" included) is incompatible.
func (g Gap) Accommodates(pref memo.LocationPreference) bool {
	if pref == memo.LocationNone || g.Location == GapLocationUnknown {
		return true
	}
	switch g.Location {
	case GapLocationHome:
		return pref == memo.LocationHome
	case GapLocationWorkplace:
		return pref == memo.LocationWorkplace
	default:
		return false
	}
}

// ValidateGaps checks that a day's gap set is ordered and non-overlapping.
func ValidateGaps(gaps []Gap) error {
	sorted := make([]Gap, len(gaps))
	copy(sorted, gaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	for i := range sorted {
		if !sorted[i].End.After(sorted[i].Start) {
			return ErrInvalidGapRange
		}
		if i > 0 && sorted[i].Start.Before(sorted[i-1].End) {
			return ErrOverlappingGaps
		}
	}
	return nil
}
