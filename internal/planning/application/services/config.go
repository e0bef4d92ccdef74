package services

// Config tunes how urgency is computed and sessions are predicted.
// The hidden and mandatory thresholds are contractual; the gradients
// between them are tuning knobs.
type Config struct {
	// HiddenThreshold is the need below which a suggestion is computed but
	// not surfaced to the user.
	HiddenThreshold float64
	// MandatoryThreshold is the need at which a suggestion must be placed
	// before any optional one.
	MandatoryThreshold float64

	// PlausibleDailyMinutes is how much free time a day is assumed to offer
	// when judging whether remaining deadline work still fits.
	PlausibleDailyMinutes int

	// DeadlineBaseNeed anchors the deadline gradient: need approaches the
	// mandatory threshold as remaining work approaches remaining capacity.
	DeadlineBaseNeed float64
	// RoutineBaseNeed anchors the routine gradient against the completion
	// shortfall versus the days left in the period.
	RoutineBaseNeed float64
	// BacklogBaseNeed and BacklogRampPerDay shape the "long untouched"
	// gradient for backlog memos.
	BacklogBaseNeed   float64
	BacklogRampPerDay float64
	// BacklogNeedCap keeps backlog memos below mandatory forever.
	BacklogNeedCap float64
	// NeedCap bounds all needs so wildly overdue memos still compare sanely.
	NeedCap float64

	// SmoothingAlpha is the exponential smoothing constant for the
	// actual-to-expected duration multiplier.
	SmoothingAlpha float64
	// MultiplierMin and MultiplierMax bound the smoothed multiplier so one
	// outlier session cannot run away with the extrapolation.
	MultiplierMin float64
	MultiplierMax float64
}

// DefaultConfig returns a production-friendly configuration.
func DefaultConfig() Config {
	return Config{
		HiddenThreshold:       0.5,
		MandatoryThreshold:    1.0,
		PlausibleDailyMinutes: 120,
		DeadlineBaseNeed:      0.4,
		RoutineBaseNeed:       0.35,
		BacklogBaseNeed:       0.2,
		BacklogRampPerDay:     0.025,
		BacklogNeedCap:        0.9,
		NeedCap:               2.0,
		SmoothingAlpha:        0.3,
		MultiplierMin:         0.5,
		MultiplierMax:         5.0,
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
