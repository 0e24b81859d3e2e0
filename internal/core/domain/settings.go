package domain

import "time"

const unknownDescription = "Unknown"

// BrowserKind identifies the schema of a browser history database.
type BrowserKind string

// Supported browser history schemas.
const (
	// BrowserChromium covers Chrome, Arc, Brave, Edge, Vivaldi, Opera and Chromium.
	BrowserChromium BrowserKind = "chromium"

	// BrowserFirefox covers Firefox and its forks.
	BrowserFirefox BrowserKind = "firefox"
)

// IsValid returns true if the browser kind is recognised.
func (b BrowserKind) IsValid() bool {
	switch b {
	case BrowserChromium, BrowserFirefox:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b BrowserKind) String() string {
	return string(b)
}

// Description returns a human-readable description of the browser kind.
func (b BrowserKind) Description() string {
	switch b {
	case BrowserChromium:
		return "Chromium-based"
	case BrowserFirefox:
		return "Firefox"
	default:
		return unknownDescription
	}
}

// HistoryDatabase locates one browser history database.
type HistoryDatabase struct {
	// Kind selects the schema used to read Path.
	Kind BrowserKind

	// Path is the absolute path to the History / places.sqlite file.
	Path string
}

// LauncherSettings holds palette behaviour configuration.
type LauncherSettings struct {
	// LaunchShortcut is the global hotkey advertised to the hotkey daemon.
	LaunchShortcut string

	// Debounce is how long a query waits before it is sent to the resolver.
	Debounce time.Duration

	// MaxResults caps the number of results per query.
	MaxResults int

	// ScriptsDir is the directory listed in Scripts mode.
	ScriptsDir string

	// HideQuits exits the program instead of hiding the palette.
	HideQuits bool

	// HideOnBlur treats terminal focus loss as the window being hidden.
	HideOnBlur bool
}

// IndexSettings holds file indexer configuration.
type IndexSettings struct {
	// SearchDirectories are the roots walked by the indexer. "~" is expanded.
	SearchDirectories []string

	// Exclude holds glob patterns for paths that are never indexed.
	Exclude []string

	// MaxDepth limits how deep the indexer descends.
	MaxDepth int
}

// BrowserSettings holds browser history configuration.
type BrowserSettings struct {
	// Databases lists the history databases to read.
	// When empty, well-known locations are probed.
	Databases []HistoryDatabase
}

// IPCSettings holds the control endpoint configuration.
type IPCSettings struct {
	// Addr is the listen address. Empty disables the endpoint.
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Launcher holds palette behaviour settings.
	Launcher LauncherSettings

	// Index holds file indexer settings.
	Index IndexSettings

	// Browser holds browser history settings.
	Browser BrowserSettings

	// IPC holds control endpoint settings.
	IPC IPCSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// ScriptsDir is left empty; the settings service fills it in
// relative to the config directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Launcher: LauncherSettings{
			LaunchShortcut: "Control+Space",
			Debounce:       80 * time.Millisecond,
			MaxResults:     50,
		},
		Index: IndexSettings{
			SearchDirectories: []string{"~/Desktop", "~/Downloads", "~/Applications"},
			Exclude:           []string{"**/node_modules/**", "**/.git/**"},
			MaxDepth:          6,
		},
		IPC: IPCSettings{
			Addr: "127.0.0.1:2357",
		},
	}
}
