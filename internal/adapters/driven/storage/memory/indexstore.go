package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu      sync.RWMutex
	paths   []string
	updated time.Time
}

// NewIndexStore creates an empty index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Replace swaps the stored paths. Duplicates are dropped.
func (s *IndexStore) Replace(_ context.Context, paths []string) error {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = unique
	s.updated = time.Now().UTC()
	return nil
}

// List returns up to limit paths ordered by path.
func (s *IndexStore) List(_ context.Context, limit int) ([]domain.IndexedPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.paths)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.IndexedPath, 0, n)
	for _, p := range s.paths[:n] {
		out = append(out, domain.IndexedPath{Path: p, LastUpdated: s.updated})
	}
	return out, nil
}

// Stats summarises the index.
func (s *IndexStore) Stats(_ context.Context) (domain.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.IndexStats{Paths: len(s.paths), LastUpdated: s.updated}, nil
}
