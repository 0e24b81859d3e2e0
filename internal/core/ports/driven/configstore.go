package driven

// ConfigStore holds the launcher configuration as flat, dot-separated keys
// such as "launcher.max_results", "launcher.search_directories",
// "browser.history_paths" and "ipc.addr". A key's first segment names the
// table it is persisted under.
//
// Typed getters return the zero value when a key is missing or holds a
// value of another type, so callers fall back to domain.DefaultAppSettings.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any integer representation the backing format decodes to.
	GetInt(key string) int

	GetBool(key string) bool

	GetStringSlice(key string) []string

	// Set stores value under key and persists it.
	Set(key string, value any) error

	Save() error

	// Load replaces the in-memory values with the persisted ones.
	Load() error

	// Path is where the configuration lives, shown by `swordfish settings path`
	// and the settings screen. Stores without a file return a placeholder.
	Path() string
}
