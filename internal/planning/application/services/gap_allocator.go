package services

import (
	"sort"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/schedule"
)

// GapAllocator assigns suggestions to the day's free-time gaps. It is a
// greedy best-fit, deliberately simple and deterministic: the same inputs
// always produce the same placement, so suggestions stay stable across
// reloads.
type GapAllocator struct {
	config Config
}

// NewGapAllocator creates an allocator with the given configuration.
func NewGapAllocator(config Config) *GapAllocator {
	return &GapAllocator{config: config}
}

// Allocate maps each candidate to at most one gap and each gap to at most
// one candidate. Candidates that fit nowhere, even shrunk to their base
// duration, are returned unplaced: they stay visible as unscheduled
// suggestions but consume no gap.
func (a *GapAllocator) Allocate(candidates []schedule.Suggestion, gaps []schedule.Gap) schedule.AllocationResult {
	ordered := a.sortCandidates(candidates)

	pool := make([]schedule.Gap, len(gaps))
	copy(pool, gaps)

	result := schedule.AllocationResult{
		Placements: make([]schedule.Placement, 0, len(ordered)),
	}

	for _, candidate := range ordered {
		gapIdx := a.bestFit(pool, candidate, candidate.Duration)
		allocated := candidate.Duration

		// Shrink toward the base duration when nothing fits at the ideal
		// length. Never below it.
		if gapIdx < 0 && candidate.BaseDuration < candidate.Duration {
			gapIdx = a.bestFit(pool, candidate, candidate.BaseDuration)
			allocated = candidate.BaseDuration
		}

		if gapIdx < 0 {
			result.Unplaced = append(result.Unplaced, candidate.MemoID)
			continue
		}

		gap := pool[gapIdx]
		result.Placements = append(result.Placements, schedule.Placement{
			MemoID:           candidate.MemoID,
			GapID:            gap.ID,
			AllocatedMinutes: allocated,
			LeftoverMinutes:  gap.Minutes() - allocated,
		})

		// The gap is consumed whole; leftover capacity is reported above,
		// never reused within the pass.
		pool = append(pool[:gapIdx], pool[gapIdx+1:]...)
	}

	return result
}

// sortCandidates orders candidates for the greedy scan: mandatory before
// optional regardless of raw need, then need descending, importance
// descending, duration ascending (quick wins first when equally urgent),
// and finally memo ID so ties cannot reorder between runs.
func (a *GapAllocator) sortCandidates(candidates []schedule.Suggestion) []schedule.Suggestion {
	sorted := make([]schedule.Suggestion, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		mi := sorted[i].Need >= a.config.MandatoryThreshold
		mj := sorted[j].Need >= a.config.MandatoryThreshold
		if mi != mj {
			return mi
		}
		if sorted[i].Need != sorted[j].Need {
			return sorted[i].Need > sorted[j].Need
		}
		if sorted[i].Importance != sorted[j].Importance {
			return sorted[i].Importance > sorted[j].Importance
		}
		if sorted[i].Duration != sorted[j].Duration {
			return sorted[i].Duration < sorted[j].Duration
		}
		return sorted[i].MemoID.String() < sorted[j].MemoID.String()
	})

	return sorted
}

// bestFit returns the index of the smallest remaining gap that holds the
// duration and is location-compatible, or -1.
func (a *GapAllocator) bestFit(pool []schedule.Gap, candidate schedule.Suggestion, duration int) int {
	best := -1
	bestMinutes := 0
	for i, gap := range pool {
		minutes := gap.Minutes()
		if minutes < duration {
			continue
		}
		if !gap.Accommodates(candidate.Location) {
			continue
		}
		if best < 0 || minutes < bestMinutes {
			best = i
			bestMinutes = minutes
		}
	}
	return best
}
