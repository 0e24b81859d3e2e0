package resolver

import (
	"context"
	"time"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// MockIndexStore is a mock implementation of driven.IndexStore.
type MockIndexStore struct {
	ListFunc   func(ctx context.Context, limit int) ([]domain.IndexedPath, error)
	ListLimits []int
}

func (m *MockIndexStore) Replace(_ context.Context, _ []string) error {
	return nil
}

func (m *MockIndexStore) List(ctx context.Context, limit int) ([]domain.IndexedPath, error) {
	m.ListLimits = append(m.ListLimits, limit)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockIndexStore) Stats(_ context.Context) (domain.IndexStats, error) {
	return domain.IndexStats{}, nil
}

// MockHistorySource is a mock implementation of driven.HistorySource.
type MockHistorySource struct {
	VisitsFunc func(ctx context.Context) ([]domain.HistoryVisit, error)
}

func (m *MockHistorySource) Visits(ctx context.Context) ([]domain.HistoryVisit, error) {
	if m.VisitsFunc != nil {
		return m.VisitsFunc(ctx)
	}
	return nil, nil
}

// MockCalculator is a mock implementation of driven.Calculator.
type MockCalculator struct {
	EvaluateFunc func(ctx context.Context, expr string) (string, bool)
}

func (m *MockCalculator) Evaluate(ctx context.Context, expr string) (string, bool) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, expr)
	}
	return "", false
}

func indexOf(paths ...string) *MockIndexStore {
	return &MockIndexStore{
		ListFunc: func(_ context.Context, limit int) ([]domain.IndexedPath, error) {
			out := make([]domain.IndexedPath, 0, len(paths))
			for _, p := range paths {
				if limit > 0 && len(out) == limit {
					break
				}
				out = append(out, domain.IndexedPath{Path: p})
			}
			return out, nil
		},
	}
}

func fixedNow(e *Engine, now time.Time) {
	e.now = func() time.Time { return now }
}

func headings(resp *domain.QueryResponse) []string {
	out := make([]string, len(resp.Results))
	for i, r := range resp.Results {
		out[i] = r.Heading
	}
	return out
}
