package driving

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// SessionController is the mutation API of the search session.
// It is owned by a single event loop and is not safe for concurrent use.
type SessionController interface {
	// SetSearchString replaces the search text and issues a query.
	// It is a no-op when s equals the current text.
	SetSearchString(s string)

	// SetMode selects a mode, resets the cursor and issues a query.
	SetMode(m domain.QueryMode) error

	// NextMode advances to the next mode, wrapping.
	NextMode()

	// PrevMode retreats to the previous mode, wrapping.
	PrevMode()

	// SetCursor moves the cursor, clamped to the result list.
	SetCursor(i int)

	// CursorUp moves the cursor up or recalls history.
	CursorUp()

	// CursorDown moves the cursor down.
	CursorDown()

	// SelectedResult returns the result under the cursor when key is 0,
	// or the key-th result (1-based, clamped) for numeric shortcuts.
	SelectedResult(key int) (*domain.ResultEntry, bool)

	// OpenResult performs the entry's side effect and resets the session.
	OpenResult(ctx context.Context, entry *domain.ResultEntry) error

	// CopySelected copies the selected result's value to the clipboard.
	CopySelected(ctx context.Context) error

	// OpenSettings toggles the settings window.
	OpenSettings(ctx context.Context) error

	// ResetAndHide hides the palette and clears the session.
	ResetAndHide(ctx context.Context)

	// HandleWindowHidden reacts to the palette being hidden externally.
	HandleWindowHidden(ctx context.Context)

	// Snapshot returns a copy of the current state for rendering.
	Snapshot() domain.SearchSession
}
