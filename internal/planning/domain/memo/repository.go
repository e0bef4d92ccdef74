package memo

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for memos.
type Repository interface {
	// Save persists a memo (insert or update).
	Save(ctx context.Context, m *Memo) error

	// FindByID retrieves a memo by ID. Returns (nil, nil) when absent:
	// reactions on a deleted memo must degrade to a silent no-op.
	FindByID(ctx context.Context, id uuid.UUID) (*Memo, error)

	// FindActive retrieves all non-archived memos.
	FindActive(ctx context.Context) ([]*Memo, error)

	// Delete removes a memo permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
