package cli

import (
	"context"
	"io"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// MockQueryService implements driving.QueryService for testing.
type MockQueryService struct {
	QueryFunc func(ctx context.Context, q domain.Query, limit int) (*domain.QueryResponse, error)
}

func (m *MockQueryService) Query(ctx context.Context, q domain.Query, limit int) (*domain.QueryResponse, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q, limit)
	}
	return &domain.QueryResponse{Results: []domain.ResultEntry{}}, nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	RebuildFunc func(ctx context.Context) (domain.IndexStats, error)
	WatchFunc   func(ctx context.Context) error
}

func (m *MockIndexService) Rebuild(ctx context.Context) (domain.IndexStats, error) {
	if m.RebuildFunc != nil {
		return m.RebuildFunc(ctx)
	}
	return domain.IndexStats{}, nil
}

func (m *MockIndexService) Watch(ctx context.Context) error {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx)
	}
	return nil
}

func (m *MockIndexService) Stats(_ context.Context) (domain.IndexStats, error) {
	return domain.IndexStats{}, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	GetFunc  func() (*domain.AppSettings, error)
	SaveFunc func(settings *domain.AppSettings) error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) Path() string {
	return "/home/test/.config/swordfish/config.toml"
}

func sampleResults() *domain.QueryResponse {
	return &domain.QueryResponse{Results: []domain.ResultEntry{
		domain.NewCalculatorResult("14", "2*(3+4)", "2*(3+4) = 14"),
		domain.NewFileResult("notes.txt", "/home/test/notes.txt", domain.FilePreview{Path: "/home/test/notes.txt"}),
	}}
}

// setupTestServices installs mock services and resets flag state.
// The returned function restores the previous state.
func setupTestServices() func() {
	oldQuery, oldIndex, oldSettings := queryService, indexService, settingsService
	oldTerminal := isTerminal

	SetServices(&MockQueryService{}, &MockIndexService{}, &MockSettingsService{})
	isTerminal = func(io.Writer) bool { return false }

	return func() {
		SetServices(oldQuery, oldIndex, oldSettings)
		isTerminal = oldTerminal
		queryMode = domain.ModeSearch.String()
		queryLimit = 10
		queryJSON = false
		indexWatch = false
		mcpHTTPAddr = ""
		rootCmd.SetArgs(nil)
	}
}
