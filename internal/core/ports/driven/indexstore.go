package driven

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// IndexStore persists the file path index.
type IndexStore interface {
	// Replace swaps the whole index for paths in a single transaction.
	Replace(ctx context.Context, paths []string) error

	// List returns up to limit indexed paths ordered by path.
	// A limit <= 0 returns every path.
	List(ctx context.Context, limit int) ([]domain.IndexedPath, error)

	// Stats summarises the index.
	Stats(ctx context.Context) (domain.IndexStats, error)
}
