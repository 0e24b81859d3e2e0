package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// MockResolver implements driven.ResultResolver for testing.
type MockResolver struct {
	ResolveFunc func(ctx context.Context, q domain.Query) (*domain.QueryResponse, error)
}

func (m *MockResolver) Resolve(ctx context.Context, q domain.Query) (*domain.QueryResponse, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, q)
	}
	return &domain.QueryResponse{}, nil
}

// MockWindow implements driven.WindowController for testing.
type MockWindow struct {
	HideMainFunc       func(ctx context.Context) error
	ToggleSettingsFunc func(ctx context.Context) error

	HideCalls int
}

func (m *MockWindow) HideMain(ctx context.Context) error {
	m.HideCalls++
	if m.HideMainFunc != nil {
		return m.HideMainFunc(ctx)
	}
	return nil
}

func (m *MockWindow) ShowMain(_ context.Context) error     { return nil }
func (m *MockWindow) ToggleMain(_ context.Context) error   { return nil }
func (m *MockWindow) ShowSettings(_ context.Context) error { return nil }
func (m *MockWindow) HideSettings(_ context.Context) error { return nil }

func (m *MockWindow) ToggleSettings(ctx context.Context) error {
	if m.ToggleSettingsFunc != nil {
		return m.ToggleSettingsFunc(ctx)
	}
	return nil
}

// MockShell implements driven.Shell for testing.
type MockShell struct {
	OpenFunc     func(ctx context.Context, target string) error
	CopyTextFunc func(ctx context.Context, text string) error

	Opened []string
	Copied []string
}

func (m *MockShell) Open(ctx context.Context, target string) error {
	m.Opened = append(m.Opened, target)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, target)
	}
	return nil
}

func (m *MockShell) CopyText(ctx context.Context, text string) error {
	m.Copied = append(m.Copied, text)
	if m.CopyTextFunc != nil {
		return m.CopyTextFunc(ctx, text)
	}
	return nil
}

// MockIndexStore implements driven.IndexStore for testing.
type MockIndexStore struct {
	mu       sync.Mutex
	paths    []string
	replaces int

	ReplaceFunc func(ctx context.Context, paths []string) error
}

func (m *MockIndexStore) Replace(ctx context.Context, paths []string) error {
	if m.ReplaceFunc != nil {
		if err := m.ReplaceFunc(ctx, paths); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append([]string(nil), paths...)
	m.replaces++
	return nil
}

func (m *MockIndexStore) List(_ context.Context, limit int) ([]domain.IndexedPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.IndexedPath
	for _, p := range m.paths {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, domain.IndexedPath{Path: p})
	}
	return out, nil
}

func (m *MockIndexStore) Stats(_ context.Context) (domain.IndexStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.IndexStats{Paths: len(m.paths)}, nil
}

func (m *MockIndexStore) Replaces() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}

func (m *MockIndexStore) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// MockFileWatcher implements driven.FileWatcher for testing.
type MockFileWatcher struct {
	Events chan string
	Roots  []string
}

func (m *MockFileWatcher) Watch(ctx context.Context, roots []string) (<-chan string, error) {
	m.Roots = roots
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p, ok := <-m.Events:
				if !ok {
					return
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func fileResults(paths ...string) []domain.ResultEntry {
	out := make([]domain.ResultEntry, 0, len(paths))
	for _, p := range paths {
		out = append(out, domain.NewFileResult(p, "/tmp/"+p, domain.FilePreview{Path: "/tmp/" + p, Filename: p}))
	}
	return out
}

// answer applies a response for the latest drained ticket.
func answer(t interface{ Helper() }, s *Session, results []domain.ResultEntry) bool {
	t.Helper()
	tickets := s.Channel().Drain()
	if len(tickets) == 0 {
		return false
	}
	return s.ApplyResponse(Response{Ticket: tickets[len(tickets)-1], Results: results})
}
