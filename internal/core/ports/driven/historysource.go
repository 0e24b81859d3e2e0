package driven

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// HistorySource reads visited URLs from browser history databases.
type HistorySource interface {
	// Visits returns history entries, most recently visited first.
	Visits(ctx context.Context) ([]domain.HistoryVisit, error)
}
