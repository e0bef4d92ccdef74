package queries

import (
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
)

// MemoDTO is the read model of a memo, flattened for presentation.
type MemoDTO struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	Genre         string     `json:"genre,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	GoalCount     int        `json:"goal_count,omitempty"`
	GoalPeriod    string     `json:"goal_period,omitempty"`
	Importance    string     `json:"importance"`
	Location      string     `json:"location"`
	SessionMins   int        `json:"session_mins"`
	TotalMins     int        `json:"total_mins,omitempty"`
	LastActivity  time.Time  `json:"last_activity"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	IsArchived    bool       `json:"is_archived"`
	CreatedAt     time.Time  `json:"created_at"`

	// Per-type progress, zero-valued where not applicable.
	CompletedThisPeriod int  `json:"completed_this_period,omitempty"`
	GoalMetThisPeriod   bool `json:"goal_met_this_period,omitempty"`
	AcceptedToday       bool `json:"accepted_today"`
	RejectedToday       bool `json:"rejected_today"`
	MinutesLogged       int  `json:"minutes_logged,omitempty"`
}

func toMemoDTO(m *memo.Memo, now time.Time) MemoDTO {
	dto := MemoDTO{
		ID:            m.ID(),
		Title:         m.Title(),
		Type:          string(m.Type()),
		Genre:         m.Genre(),
		Deadline:      m.Deadline(),
		Importance:    string(m.Importance()),
		Location:      string(m.Location()),
		SessionMins:   m.SessionDuration(),
		TotalMins:     m.TotalDurationExpected(),
		LastActivity:  m.LastActivity(),
		AvailableFrom: m.AvailableFrom(),
		IsArchived:    m.IsArchived(),
		CreatedAt:     m.CreatedAt(),
	}
	if goal := m.Goal(); goal != nil {
		dto.GoalCount = goal.Count
		dto.GoalPeriod = string(goal.Period)
	}

	switch m.Type() {
	case memo.TypeRoutine:
		if st := m.Routine(); st != nil {
			dto.CompletedThisPeriod = st.CompletedCountThisPeriod
			dto.GoalMetThisPeriod = st.WasCappedThisPeriod
			dto.AcceptedToday = st.AcceptedToday
			dto.RejectedToday = st.RejectedToday
		}
	case memo.TypeDeadline:
		if st := m.DeadlineState(); st != nil {
			dto.AcceptedToday = st.AcceptedToday(now)
			dto.RejectedToday = st.RejectedToday
			for _, minutes := range st.ActualDurations {
				dto.MinutesLogged += minutes
			}
		}
	case memo.TypeBacklog:
		if st := m.Backlog(); st != nil {
			dto.AcceptedToday = st.AcceptedToday
			dto.RejectedToday = st.RejectedToday
		}
	}

	return dto
}
