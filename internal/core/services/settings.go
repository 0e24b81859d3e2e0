package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLaunchShortcut = "launcher.launch_shortcut"
	keySearchDirs     = "launcher.search_directories"
	keyExclude        = "launcher.exclude"
	keyMaxDepth       = "launcher.max_depth"
	keyMaxResults     = "launcher.max_results"
	keyDebounceMS     = "launcher.debounce_ms"
	keyScriptsDir     = "launcher.scripts_dir"
	keyHideQuits      = "launcher.hide_quits"
	keyHideOnBlur     = "launcher.hide_on_blur"
	keyHistoryPaths   = "browser.history_paths"
	keyIPCAddr        = "ipc.addr"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	configDir   string
}

// NewSettingsService creates a new settings service.
// configDir anchors relative defaults such as the scripts directory.
func NewSettingsService(configStore driven.ConfigStore, configDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		configDir:   configDir,
	}
}

// Get retrieves current application settings with "~" expanded.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Launcher: domain.LauncherSettings{
			LaunchShortcut: s.getString(keyLaunchShortcut, defaults.Launcher.LaunchShortcut),
			Debounce:       s.getDebounce(defaults.Launcher.Debounce),
			MaxResults:     s.getInt(keyMaxResults, defaults.Launcher.MaxResults),
			ScriptsDir:     ExpandHome(s.getString(keyScriptsDir, defaults.Launcher.ScriptsDir)),
			HideQuits:      s.getBool(keyHideQuits, defaults.Launcher.HideQuits),
			HideOnBlur:     s.getBool(keyHideOnBlur, defaults.Launcher.HideOnBlur),
		},
		Index: domain.IndexSettings{
			SearchDirectories: expandAll(s.getStringSlice(keySearchDirs, defaults.Index.SearchDirectories)),
			Exclude:           s.getStringSlice(keyExclude, defaults.Index.Exclude),
			MaxDepth:          s.getInt(keyMaxDepth, defaults.Index.MaxDepth),
		},
		Browser: domain.BrowserSettings{
			Databases: s.getHistoryDatabases(),
		},
		IPC: domain.IPCSettings{
			Addr: s.getIPCAddr(defaults.IPC.Addr),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLaunchShortcut, settings.Launcher.LaunchShortcut},
		{keyDebounceMS, int(settings.Launcher.Debounce / time.Millisecond)},
		{keyMaxResults, settings.Launcher.MaxResults},
		{keyScriptsDir, settings.Launcher.ScriptsDir},
		{keyHideQuits, settings.Launcher.HideQuits},
		{keyHideOnBlur, settings.Launcher.HideOnBlur},
		{keySearchDirs, settings.Index.SearchDirectories},
		{keyExclude, settings.Index.Exclude},
		{keyMaxDepth, settings.Index.MaxDepth},
		{keyHistoryPaths, formatHistoryDatabases(settings.Browser.Databases)},
		{keyIPCAddr, settings.IPC.Addr},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	if s.configDir != "" {
		defaults.Launcher.ScriptsDir = filepath.Join(s.configDir, "scripts")
	}
	return defaults
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func expandAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, ExpandHome(p))
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return append([]string(nil), defaultVal...)
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getDebounce(defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(keyDebounceMS); !exists {
		return defaultVal
	}
	ms := s.configStore.GetInt(keyDebounceMS)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

// getIPCAddr distinguishes an explicit empty address (disabled) from unset.
func (s *SettingsService) getIPCAddr(defaultVal string) string {
	if _, exists := s.configStore.Get(keyIPCAddr); !exists {
		return defaultVal
	}
	return s.configStore.GetString(keyIPCAddr)
}

// getHistoryDatabases parses "kind:path" entries. Invalid entries are skipped.
func (s *SettingsService) getHistoryDatabases() []domain.HistoryDatabase {
	var dbs []domain.HistoryDatabase
	for _, entry := range s.configStore.GetStringSlice(keyHistoryPaths) {
		kind, path, ok := strings.Cut(entry, ":")
		if !ok || path == "" {
			continue
		}
		browser := domain.BrowserKind(strings.ToLower(strings.TrimSpace(kind)))
		if !browser.IsValid() {
			continue
		}
		dbs = append(dbs, domain.HistoryDatabase{Kind: browser, Path: ExpandHome(path)})
	}
	return dbs
}

func formatHistoryDatabases(dbs []domain.HistoryDatabase) []string {
	out := make([]string, 0, len(dbs))
	for _, db := range dbs {
		out = append(out, db.Kind.String()+":"+db.Path)
	}
	return out
}
