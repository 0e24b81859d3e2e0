// Package window implements driven.WindowController for a terminal front end.
//
// A terminal has no windows to hide, so the controller only records what
// the launcher asked for. The TUI reads the flags after every update to
// pick the screen to draw, or to quit.
package window

import (
	"context"
	"sync"

	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
)

// Ensure Terminal implements the interface.
var _ driven.WindowController = (*Terminal)(nil)

// Terminal tracks palette and settings visibility.
type Terminal struct {
	mu           sync.Mutex
	mainHidden   bool
	settingsOpen bool
	hideQuits    bool
	quit         bool
}

// NewTerminal creates a controller with the palette visible. When
// hideQuits is set, hiding the palette asks the program to exit.
func NewTerminal(hideQuits bool) *Terminal {
	return &Terminal{hideQuits: hideQuits}
}

// HideMain implements driven.WindowController.
func (t *Terminal) HideMain(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hideMainLocked()
	return nil
}

// ShowMain implements driven.WindowController.
func (t *Terminal) ShowMain(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mainHidden = false
	t.settingsOpen = false
	return nil
}

// ToggleMain implements driven.WindowController.
func (t *Terminal) ToggleMain(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mainHidden {
		t.mainHidden = false
		t.settingsOpen = false
	} else {
		t.hideMainLocked()
	}
	return nil
}

// ShowSettings implements driven.WindowController.
func (t *Terminal) ShowSettings(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settingsOpen = true
	return nil
}

// HideSettings implements driven.WindowController.
func (t *Terminal) HideSettings(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settingsOpen = false
	return nil
}

// ToggleSettings implements driven.WindowController.
func (t *Terminal) ToggleSettings(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settingsOpen = !t.settingsOpen
	return nil
}

// MainHidden reports whether the palette is hidden.
func (t *Terminal) MainHidden() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mainHidden
}

// SettingsVisible reports whether the settings window is open.
func (t *Terminal) SettingsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settingsOpen
}

// ShouldQuit reports whether hiding the palette requested program exit.
func (t *Terminal) ShouldQuit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quit
}

func (t *Terminal) hideMainLocked() {
	t.mainHidden = true
	if t.hideQuits {
		t.quit = true
	}
}
