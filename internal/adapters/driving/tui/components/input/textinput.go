// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// SearchInput wraps a bubbles textinput with the launcher prompt and an
// inline completion hint.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	inline    string
	width     int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = Placeholder(domain.ModeSearch)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Placeholder returns the hint shown in an empty input for mode m.
func Placeholder(m domain.QueryMode) string {
	switch m {
	case domain.ModeBrowserHistory:
		return "Search browser history..."
	case domain.ModeScripts:
		return "Search scripts..."
	case domain.ModeChat:
		return "Ask anything..."
	default:
		return "Search files and apps..."
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input.
func (s *SearchInput) View() string {
	prompt := s.styles.Prompt.Render("❯ ")
	field := s.textinput.View()
	if hint := s.completion(); hint != "" {
		field += s.styles.Muted.Render(hint)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, prompt, s.styles.InputField.Render(field))
}

// completion returns the part of the inline hint that extends the typed text.
func (s *SearchInput) completion() string {
	value := s.textinput.Value()
	if value == "" || s.inline == "" || !strings.HasPrefix(strings.ToLower(s.inline), strings.ToLower(value)) {
		return ""
	}
	return s.inline[len(value):]
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
// Setting the current value is a no-op so the cursor stays put while typing.
func (s *SearchInput) SetValue(value string) {
	if value == s.textinput.Value() {
		return
	}
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
}

// SetMode updates the placeholder for m.
func (s *SearchInput) SetMode(m domain.QueryMode) {
	s.textinput.Placeholder = Placeholder(m)
}

// SetInline sets the inline completion hint.
func (s *SearchInput) SetInline(hint string) {
	s.inline = hint
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for prompt, border and padding
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}
