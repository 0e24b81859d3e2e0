package mcp

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	resp  *domain.QueryResponse
	err   error
	got   domain.Query
	limit int
}

func (m *mockQueryService) Query(_ context.Context, q domain.Query, limit int) (*domain.QueryResponse, error) {
	m.got = q
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	if m.resp == nil {
		return &domain.QueryResponse{Results: []domain.ResultEntry{}}, nil
	}
	return m.resp, nil
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	stats domain.IndexStats
	err   error
}

func (m *mockIndexService) Rebuild(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockIndexService) Watch(_ context.Context) error {
	return m.err
}

func (m *mockIndexService) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}
