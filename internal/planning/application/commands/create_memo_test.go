package commands

import (
	"context"
	"testing"
	"time"

	enrichmentDomain "github.com/felixgeelhaar/daybreak/internal/enrichment/domain"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/felixgeelhaar/daybreak/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var creationDay = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestCreateMemoHandler_Handle(t *testing.T) {
	ctx := context.Background()
	publisher := eventbus.NewNoopPublisher(nil)

	t.Run("creates a deadline memo", func(t *testing.T) {
		repo := new(mockMemoRepo)
		handler := NewCreateMemoHandler(repo, nil, publisher, nil)

		repo.On("Save", ctx, mock.AnythingOfType("*memo.Memo")).Return(nil)

		deadline := creationDay.AddDate(0, 0, 5)
		result, err := handler.Handle(ctx, CreateMemoCommand{
			Title:       "file taxes",
			Type:        "deadline",
			Deadline:    &deadline,
			SessionMins: 30,
			TotalMins:   120,
			Importance:  "high",
			When:        creationDay,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.MemoID)
		repo.AssertExpectations(t)
	})

	t.Run("creates a routine memo with a goal", func(t *testing.T) {
		repo := new(mockMemoRepo)
		handler := NewCreateMemoHandler(repo, nil, publisher, nil)

		repo.On("Save", ctx, mock.AnythingOfType("*memo.Memo")).Return(nil)

		result, err := handler.Handle(ctx, CreateMemoCommand{
			Title:       "stretch",
			Type:        "routine",
			GoalCount:   3,
			GoalPeriod:  "week",
			SessionMins: 15,
			When:        creationDay,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.MemoID)
	})

	t.Run("routine without a parsable period fails", func(t *testing.T) {
		repo := new(mockMemoRepo)
		handler := NewCreateMemoHandler(repo, nil, publisher, nil)

		_, err := handler.Handle(ctx, CreateMemoCommand{
			Title:       "stretch",
			Type:        "routine",
			GoalCount:   3,
			GoalPeriod:  "fortnight",
			SessionMins: 15,
			When:        creationDay,
		})

		assert.ErrorIs(t, err, memo.ErrMissingGoal)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("deadline type requires a deadline", func(t *testing.T) {
		repo := new(mockMemoRepo)
		handler := NewCreateMemoHandler(repo, nil, publisher, nil)

		_, err := handler.Handle(ctx, CreateMemoCommand{
			Title:       "taxes",
			Type:        "deadline",
			SessionMins: 30,
			When:        creationDay,
		})

		assert.ErrorIs(t, err, memo.ErrDeadlineBeforeCreation)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		repo := new(mockMemoRepo)
		handler := NewCreateMemoHandler(repo, nil, publisher, nil)

		_, err := handler.Handle(ctx, CreateMemoCommand{Title: "x", Type: "chore", When: creationDay})

		assert.ErrorIs(t, err, memo.ErrInvalidType)
	})

	t.Run("enricher fills blank genre and durations", func(t *testing.T) {
		repo := new(mockMemoRepo)
		enricher := new(mockEnricher)
		handler := NewCreateMemoHandler(repo, enricher, publisher, nil)

		repo.On("Save", ctx, mock.AnythingOfType("*memo.Memo")).Return(nil)
		enricher.On("Enrich", ctx, "sort photos", "backlog").Return(enrichmentDomain.Enrichment{
			Genre:                  "household",
			SessionDurationMinutes: 25,
			TotalDurationMinutes:   100,
		}, nil)

		result, err := handler.Handle(ctx, CreateMemoCommand{
			Title: "sort photos",
			Type:  "backlog",
			When:  creationDay,
		})

		require.NoError(t, err)
		assert.True(t, result.Enriched)
		assert.Equal(t, "household", result.Genre)
		enricher.AssertExpectations(t)
	})

	t.Run("explicit values are never overwritten by enrichment", func(t *testing.T) {
		repo := new(mockMemoRepo)
		enricher := new(mockEnricher)
		handler := NewCreateMemoHandler(repo, enricher, publisher, nil)

		var saved *memo.Memo
		repo.On("Save", ctx, mock.AnythingOfType("*memo.Memo")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*memo.Memo)
		}).Return(nil)
		enricher.On("Enrich", ctx, "sort photos", "backlog").Return(enrichmentDomain.Enrichment{
			Genre:                  "household",
			SessionDurationMinutes: 25,
			TotalDurationMinutes:   100,
		}, nil)

		_, err := handler.Handle(ctx, CreateMemoCommand{
			Title:       "sort photos",
			Type:        "backlog",
			SessionMins: 60,
			When:        creationDay,
		})

		require.NoError(t, err)
		assert.Equal(t, 60, saved.SessionDuration())
		assert.Equal(t, "household", saved.Genre())
	})

	t.Run("unavailable enricher degrades to defaults instead of failing", func(t *testing.T) {
		repo := new(mockMemoRepo)
		enricher := new(mockEnricher)
		handler := NewCreateMemoHandler(repo, enricher, publisher, nil)

		var saved *memo.Memo
		repo.On("Save", ctx, mock.AnythingOfType("*memo.Memo")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*memo.Memo)
		}).Return(nil)
		enricher.On("Enrich", ctx, "mystery", "backlog").
			Return(enrichmentDomain.Enrichment{}, enrichmentDomain.ErrEnrichmentUnavailable)

		result, err := handler.Handle(ctx, CreateMemoCommand{
			Title: "mystery",
			Type:  "backlog",
			When:  creationDay,
		})

		require.NoError(t, err)
		assert.False(t, result.Enriched)
		assert.Equal(t, 30, saved.SessionDuration())
		assert.Equal(t, 120, saved.TotalDurationExpected())
	})

	t.Run("fully specified command skips the enricher", func(t *testing.T) {
		repo := new(mockMemoRepo)
		enricher := new(mockEnricher)
		handler := NewCreateMemoHandler(repo, enricher, publisher, nil)

		repo.On("Save", ctx, mock.AnythingOfType("*memo.Memo")).Return(nil)

		_, err := handler.Handle(ctx, CreateMemoCommand{
			Title:       "sort photos",
			Type:        "backlog",
			Genre:       "household",
			SessionMins: 45,
			TotalMins:   180,
			When:        creationDay,
		})

		require.NoError(t, err)
		enricher.AssertNotCalled(t, "Enrich")
	})
}
