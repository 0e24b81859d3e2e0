// Package keymap defines keybindings for the TUI and translates terminal
// key presses into launcher key events.
package keymap

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// KeyMap defines all keybindings for the TUI.
//
// Terminals cannot report Cmd, and most cannot report Ctrl with digits or
// punctuation, so the platform modifier is Alt.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// NextMode and PrevMode cycle the query mode.
	NextMode key.Binding
	PrevMode key.Binding

	// Up and Down move the cursor. Up also recalls history.
	Up   key.Binding
	Down key.Binding

	// Open opens the selected result.
	Open key.Binding

	// Reset clears the palette and hides it.
	Reset key.Binding

	// OpenNumbered opens the n-th result.
	OpenNumbered key.Binding

	// Copy copies the selected result.
	Copy key.Binding

	// Settings toggles the settings screen.
	Settings key.Binding

	// Show brings back a hidden palette.
	Show key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up/history"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "hide"),
		),
		OpenNumbered: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1-9", "open nth"),
		),
		Copy: key.NewBinding(
			key.WithKeys("alt+C"),
			key.WithHelp("alt+shift+c", "copy"),
		),
		Settings: key.NewBinding(
			key.WithKeys("alt+,"),
			key.WithHelp("alt+,", "settings"),
		),
		Show: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "show"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Open, k.Copy, k.Settings, k.Reset}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.OpenNumbered},
		{k.NextMode, k.PrevMode, k.Copy, k.Settings},
		{k.Reset, k.Quit},
	}
}

// KeyEvent translates a terminal key press into a launcher key event.
// It returns false for keys that have no launcher meaning, such as
// multi-rune pastes and unbound control keys.
func (k *KeyMap) KeyEvent(msg tea.KeyMsg) (domain.KeyEvent, bool) {
	switch {
	case key.Matches(msg, k.PrevMode):
		return domain.KeyEvent{Key: domain.KeyTab, Shift: true}, true
	case key.Matches(msg, k.NextMode):
		return domain.KeyEvent{Key: domain.KeyTab}, true
	case key.Matches(msg, k.Up):
		return domain.KeyEvent{Key: domain.KeyArrowUp}, true
	case key.Matches(msg, k.Down):
		return domain.KeyEvent{Key: domain.KeyArrowDown}, true
	case key.Matches(msg, k.Open):
		return domain.KeyEvent{Key: domain.KeyEnter}, true
	case key.Matches(msg, k.Reset):
		return domain.KeyEvent{Key: domain.KeyEscape}, true
	}

	var r rune
	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		r = msg.Runes[0]
	case msg.Type == tea.KeySpace:
		r = ' '
	default:
		return domain.KeyEvent{}, false
	}

	return domain.KeyEvent{
		Key:   string(r),
		Shift: unicode.IsUpper(r),
		Meta:  msg.Alt,
		Alt:   msg.Alt,
	}, true
}
