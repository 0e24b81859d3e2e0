// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
//
// Messages in the "external control" group are also sent into a running
// program from other goroutines (the IPC endpoint) via tea.Program.Send.
package messages

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/services"
)

// QueryDue fires once a ticket's debounce interval has elapsed.
type QueryDue struct {
	Ticket services.Ticket
}

// QueryResolved carries a resolver response back to the update loop.
type QueryResolved struct {
	Response services.Response
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// IndexStatsLoaded carries a summary of the file index.
type IndexStatsLoaded struct {
	Stats domain.IndexStats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// WindowIdent names a launcher window in external control messages.
type WindowIdent string

// Known windows.
const (
	WindowMain     WindowIdent = "MAIN"
	WindowSettings WindowIdent = "SETTINGS"
)

// ParseWindowIdent converts a window name, in any case, into a WindowIdent.
func ParseWindowIdent(s string) (WindowIdent, error) {
	switch w := WindowIdent(strings.ToUpper(strings.TrimSpace(s))); w {
	case WindowMain, WindowSettings:
		return w, nil
	default:
		return "", fmt.Errorf("%w: window %q", domain.ErrInvalidInput, s)
	}
}

// External control.

// OpenWindow shows a window.
type OpenWindow struct {
	Window WindowIdent
}

// CloseWindow hides a window. Hiding the palette resets the session.
type CloseWindow struct {
	Window WindowIdent
}

// RunQuery shows the palette with the given text and mode.
type RunQuery struct {
	Query domain.Query
}

// RunScript shows the palette filtered to the named script.
type RunScript struct {
	Name string
}
