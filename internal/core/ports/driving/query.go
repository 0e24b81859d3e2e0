package driving

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// QueryService answers one-shot queries outside of a session.
// It is used by the CLI and MCP adapters.
type QueryService interface {
	// Query resolves q and returns at most limit results (0 = no limit).
	Query(ctx context.Context, q domain.Query, limit int) (*domain.QueryResponse, error)
}
