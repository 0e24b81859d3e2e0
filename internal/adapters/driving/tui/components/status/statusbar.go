// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Bar displays the active mode, query state and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	mode        domain.QueryMode
	message     string
	resultCount int
	indexed     int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()
	if lipgloss.Width(left)+lipgloss.Width(right)+3 > s.width {
		right = ""
	}

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	mode := s.styles.Subtitle.Render(s.mode.Description())

	switch s.state {
	case StateLoading:
		return mode + s.styles.Muted.Render("  searching...")
	case StateError:
		msg := "error"
		if s.message != "" {
			msg = s.message
		}
		return mode + "  " + s.styles.Error.Render(msg)
	case StateReady:
	}

	info := fmt.Sprintf("  %d results", s.resultCount)
	if s.indexed > 0 {
		info += fmt.Sprintf(" · %d indexed", s.indexed)
	}
	return mode + s.styles.Muted.Render(info)
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, hint(b))
	}
	return s.styles.Help.Render(strings.Join(hints, "  "))
}

func hint(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("%s %s", h.Key, h.Desc)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMode sets the mode shown on the left.
func (s *Bar) SetMode(m domain.QueryMode) {
	s.mode = m
}

// SetMessage sets the error message shown in StateError.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// SetIndexed sets the number of indexed paths.
func (s *Bar) SetIndexed(count int) {
	s.indexed = count
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
