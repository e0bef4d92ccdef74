package schedule

import (
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
)

// Suggestion is a scored candidate for filling a gap, derived from a memo.
// It lives for one scheduling pass and is never persisted.
type Suggestion struct {
	ID     uuid.UUID
	MemoID uuid.UUID
	// Need is the continuous urgency score: >= 1.0 is mandatory,
	// below the hidden threshold it is excluded from user-facing lists.
	Need       float64
	Importance float64
	// Duration is the computed ideal session length in minutes, possibly
	// regression-extended for deadline memos.
	Duration int
	// BaseDuration is the shrink floor: the session may never be compressed
	// below it when gap space is scarce.
	BaseDuration int
	Type         memo.Type
	Location     memo.LocationPreference
	Hidden       bool
}

// Mandatory reports whether the suggestion must be placed before any
// optional one.
func (s Suggestion) Mandatory() bool {
	return s.Need >= 1.0
}

// Placement records one suggestion assigned to one gap.
type Placement struct {
	MemoID uuid.UUID
	GapID  string
	// AllocatedMinutes is the (possibly shrunk) session length placed.
	AllocatedMinutes int
	// LeftoverMinutes is the gap capacity beyond the placed session. The gap
	// is consumed whole; leftovers are reported, not reused, so one pass
	// never fragments a gap into several tiny sessions.
	LeftoverMinutes int
}

// AllocationResult is the outcome of one allocation pass. An unplaced
// mandatory suggestion is a normal outcome, not an error: it signals an
// overcommitted day.
type AllocationResult struct {
	Placements []Placement
	Unplaced   []uuid.UUID
}

// PlacementFor returns the placement for a memo, if any.
func (r AllocationResult) PlacementFor(memoID uuid.UUID) (Placement, bool) {
	for _, p := range r.Placements {
		if p.MemoID == memoID {
			return p, true
		}
	}
	return Placement{}, false
}
