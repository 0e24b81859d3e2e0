package driven

import "context"

// WindowController drives the launcher's windows.
// All calls are best-effort; callers log failures and carry on.
type WindowController interface {
	// HideMain hides the search palette.
	HideMain(ctx context.Context) error

	// ShowMain shows and focuses the search palette.
	ShowMain(ctx context.Context) error

	// ToggleMain flips the palette's visibility.
	ToggleMain(ctx context.Context) error

	// ShowSettings shows the settings window.
	ShowSettings(ctx context.Context) error

	// HideSettings hides the settings window.
	HideSettings(ctx context.Context) error

	// ToggleSettings flips the settings window's visibility.
	ToggleSettings(ctx context.Context) error
}
