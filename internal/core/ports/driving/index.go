package driving

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// IndexService maintains the file index used by Search mode.
type IndexService interface {
	// Rebuild walks the search directories and replaces the index.
	Rebuild(ctx context.Context) (domain.IndexStats, error)

	// Watch rebuilds the index whenever the search directories change.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context) error

	// Stats summarises the current index.
	Stats(ctx context.Context) (domain.IndexStats, error)
}
