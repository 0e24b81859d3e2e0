package driven

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// ResultResolver produces results for a query.
// Implementations may block; callers run them off the UI loop.
type ResultResolver interface {
	// Resolve answers q. Result ordering is preserved by callers.
	Resolve(ctx context.Context, q domain.Query) (*domain.QueryResponse, error)
}
