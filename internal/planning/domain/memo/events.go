package memo

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/daybreak/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Memo"

// MemoCreated is emitted when a memo is created.
type MemoCreated struct {
	sharedDomain.BaseEvent
	MemoID uuid.UUID `json:"memo_id"`
	Title  string    `json:"title"`
	Type   string    `json:"type"`
}

// NewMemoCreated creates a MemoCreated event.
func NewMemoCreated(m *Memo) *MemoCreated {
	return &MemoCreated{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, "planning.memo.created"),
		MemoID:    m.ID(),
		Title:     m.Title(),
		Type:      string(m.Type()),
	}
}

// MemoAccepted is emitted when the user commits a memo to a working slot.
type MemoAccepted struct {
	sharedDomain.BaseEvent
	MemoID    uuid.UUID `json:"memo_id"`
	SlotStart time.Time `json:"slot_start"`
	SlotEnd   time.Time `json:"slot_end"`
}

// NewMemoAccepted creates a MemoAccepted event.
func NewMemoAccepted(m *Memo, slot Slot) *MemoAccepted {
	return &MemoAccepted{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, "planning.memo.accepted"),
		MemoID:    m.ID(),
		SlotStart: slot.Start,
		SlotEnd:   slot.End,
	}
}

// MemoRejected is emitted when the user dismisses a memo for the day.
type MemoRejected struct {
	sharedDomain.BaseEvent
	MemoID uuid.UUID `json:"memo_id"`
}

// NewMemoRejected creates a MemoRejected event.
func NewMemoRejected(m *Memo) *MemoRejected {
	return &MemoRejected{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, "planning.memo.rejected"),
		MemoID:    m.ID(),
	}
}

// MemoCompleted is emitted when a working session finishes.
type MemoCompleted struct {
	sharedDomain.BaseEvent
	MemoID        uuid.UUID `json:"memo_id"`
	ActualMinutes int       `json:"actual_minutes"`
}

// NewMemoCompleted creates a MemoCompleted event.
func NewMemoCompleted(m *Memo, actualMinutes int) *MemoCompleted {
	return &MemoCompleted{
		BaseEvent:     sharedDomain.NewBaseEvent(m.ID(), aggregateType, "planning.memo.completed"),
		MemoID:        m.ID(),
		ActualMinutes: actualMinutes,
	}
}

// MemoReactionUndone is emitted when the latest accept/complete is reversed.
type MemoReactionUndone struct {
	sharedDomain.BaseEvent
	MemoID uuid.UUID `json:"memo_id"`
}

// NewMemoReactionUndone creates a MemoReactionUndone event.
func NewMemoReactionUndone(m *Memo) *MemoReactionUndone {
	return &MemoReactionUndone{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), aggregateType, "planning.memo.reaction_undone"),
		MemoID:    m.ID(),
	}
}
