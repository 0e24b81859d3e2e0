package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers one-shot queries for the CLI and MCP server.
type QueryService struct {
	resolver driven.ResultResolver
}

// NewQueryService creates a query service.
func NewQueryService(resolver driven.ResultResolver) *QueryService {
	return &QueryService{resolver: resolver}
}

// Query resolves q and truncates the results to limit when limit > 0.
// A nil resolver response is returned as an empty one.
func (s *QueryService) Query(ctx context.Context, q domain.Query, limit int) (*domain.QueryResponse, error) {
	if !q.Mode.IsValid() {
		return nil, fmt.Errorf("%w: mode %d", domain.ErrInvalidInput, int(q.Mode))
	}
	if s.resolver == nil {
		return nil, domain.ErrResolverUnavailable
	}

	resp, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	if resp == nil {
		resp = &domain.QueryResponse{}
	}
	if resp.Results == nil {
		resp.Results = []domain.ResultEntry{}
	}
	if limit > 0 && len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}
	return resp, nil
}
