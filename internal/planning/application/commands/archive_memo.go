package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
)

// ErrMemoNotFound is returned by handlers that address a memo directly, where
// a missing target is a caller mistake rather than a stale suggestion.
var ErrMemoNotFound = errors.New("memo not found")

// ArchiveMemoCommand removes a memo from scoring without deleting its history.
type ArchiveMemoCommand struct {
	MemoID uuid.UUID
}

// ArchiveMemoHandler handles the ArchiveMemoCommand.
type ArchiveMemoHandler struct {
	memoRepo memo.Repository
	logger   *slog.Logger
}

// NewArchiveMemoHandler creates a new ArchiveMemoHandler.
func NewArchiveMemoHandler(memoRepo memo.Repository, logger *slog.Logger) *ArchiveMemoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveMemoHandler{memoRepo: memoRepo, logger: logger}
}

// Handle executes the ArchiveMemoCommand.
func (h *ArchiveMemoHandler) Handle(ctx context.Context, cmd ArchiveMemoCommand) error {
	m, err := h.memoRepo.FindByID(ctx, cmd.MemoID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMemoNotFound
	}

	m.Archive()
	return h.memoRepo.Save(ctx, m)
}
