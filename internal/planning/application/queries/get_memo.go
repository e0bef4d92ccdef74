package queries

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
)

// ErrMemoNotFound is returned when a memo is not found.
var ErrMemoNotFound = errors.New("memo not found")

// GetMemoQuery contains the parameters for getting a single memo.
type GetMemoQuery struct {
	MemoID uuid.UUID
}

// GetMemoHandler handles the GetMemoQuery.
type GetMemoHandler struct {
	memoRepo memo.Repository
}

// NewGetMemoHandler creates a new GetMemoHandler.
func NewGetMemoHandler(memoRepo memo.Repository) *GetMemoHandler {
	return &GetMemoHandler{memoRepo: memoRepo}
}

// Handle executes the GetMemoQuery.
func (h *GetMemoHandler) Handle(ctx context.Context, query GetMemoQuery) (*MemoDTO, error) {
	m, err := h.memoRepo.FindByID(ctx, query.MemoID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemoNotFound
	}

	dto := toMemoDTO(m, time.Now())
	return &dto, nil
}
