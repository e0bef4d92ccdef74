package queries

import (
	"context"
	"sort"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
)

// ListMemosQuery contains the parameters for listing memos.
type ListMemosQuery struct {
	// Type filters by memo type when non-empty.
	Type string
}

// ListMemosHandler handles the ListMemosQuery.
type ListMemosHandler struct {
	memoRepo memo.Repository
}

// NewListMemosHandler creates a new ListMemosHandler.
func NewListMemosHandler(memoRepo memo.Repository) *ListMemosHandler {
	return &ListMemosHandler{memoRepo: memoRepo}
}

// Handle executes the ListMemosQuery. Results are ordered newest first.
func (h *ListMemosHandler) Handle(ctx context.Context, query ListMemosQuery) ([]MemoDTO, error) {
	memos, err := h.memoRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dtos := make([]MemoDTO, 0, len(memos))
	for _, m := range memos {
		if query.Type != "" && string(m.Type()) != query.Type {
			continue
		}
		dtos = append(dtos, toMemoDTO(m, now))
	}

	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].CreatedAt.After(dtos[j].CreatedAt)
	})

	return dtos, nil
}
