// Package tui provides the interactive terminal launcher for swordfish.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
	"github.com/custodia-labs/swordfish/internal/core/services"
)

// Session is the part of the session controller the update loop drives.
// Beyond the driving port it needs the query plumbing: the ticket
// channel, response application and the initial query.
type Session interface {
	driving.SessionController

	// Start issues the query for the current, usually empty, state.
	Start()

	// ApplyResponse stores a resolver response unless it is stale.
	ApplyResponse(resp services.Response) bool

	// Channel returns the ticket channel queries are issued on.
	Channel() *services.QueryChannel

	// OnSelectionChange registers a keyboard selection listener.
	OnSelectionChange(l services.SelectionListener)
}

// Dispatcher maps launcher key events to session operations.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev domain.KeyEvent) services.Outcome
}

// Window is the window controller the session talks to, plus the state
// the TUI reads back to choose a screen.
type Window interface {
	driven.WindowController

	MainHidden() bool
	SettingsVisible() bool
	ShouldQuit() bool
}

// Ports aggregates everything the TUI needs from the core.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the search state. Required.
	Session Session

	// Dispatcher routes key presses. Required.
	Dispatcher Dispatcher

	// Window must be the same controller the session was built with. Required.
	Window Window

	// Settings backs the settings screen.
	Settings driving.SettingsService

	// Index provides index statistics for the status bar.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Dispatcher == nil {
		return ErrMissingDispatcher
	}
	if p.Window == nil {
		return ErrMissingWindow
	}
	return nil
}
