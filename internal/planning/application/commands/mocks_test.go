package commands

import (
	"context"

	enrichmentDomain "github.com/felixgeelhaar/daybreak/internal/enrichment/domain"
	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockMemoRepo struct {
	mock.Mock
}

func (m *mockMemoRepo) Save(ctx context.Context, mm *memo.Memo) error {
	args := m.Called(ctx, mm)
	return args.Error(0)
}

func (m *mockMemoRepo) FindByID(ctx context.Context, id uuid.UUID) (*memo.Memo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memo.Memo), args.Error(1)
}

func (m *mockMemoRepo) FindActive(ctx context.Context) ([]*memo.Memo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*memo.Memo), args.Error(1)
}

func (m *mockMemoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockEnricher struct {
	mock.Mock
}

func (m *mockEnricher) Enrich(ctx context.Context, title, memoType string) (enrichmentDomain.Enrichment, error) {
	args := m.Called(ctx, title, memoType)
	return args.Get(0).(enrichmentDomain.Enrichment), args.Error(1)
}
