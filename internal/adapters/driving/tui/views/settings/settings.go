// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
)

// errNoService is shown when the view has no settings service.
var errNoService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindList
	kindToggle
	kindReadOnly
)

// field is one editable line of the settings list.
type field struct {
	label string
	kind  fieldKind
	get   func(*domain.AppSettings) string
	set   func(*domain.AppSettings, string) error
}

var fields = []field{
	{
		label: "Launch shortcut",
		kind:  kindText,
		get:   func(s *domain.AppSettings) string { return s.Launcher.LaunchShortcut },
		set: func(s *domain.AppSettings, v string) error {
			s.Launcher.LaunchShortcut = v
			return nil
		},
	},
	{
		label: "Search directories",
		kind:  kindList,
		get:   func(s *domain.AppSettings) string { return strings.Join(s.Index.SearchDirectories, ", ") },
		set: func(s *domain.AppSettings, v string) error {
			s.Index.SearchDirectories = splitList(v)
			return nil
		},
	},
	{
		label: "Exclude patterns",
		kind:  kindList,
		get:   func(s *domain.AppSettings) string { return strings.Join(s.Index.Exclude, ", ") },
		set: func(s *domain.AppSettings, v string) error {
			s.Index.Exclude = splitList(v)
			return nil
		},
	},
	{
		label: "Max depth",
		kind:  kindNumber,
		get:   func(s *domain.AppSettings) string { return strconv.Itoa(s.Index.MaxDepth) },
		set: func(s *domain.AppSettings, v string) error {
			return setPositive(&s.Index.MaxDepth, v)
		},
	},
	{
		label: "Max results",
		kind:  kindNumber,
		get:   func(s *domain.AppSettings) string { return strconv.Itoa(s.Launcher.MaxResults) },
		set: func(s *domain.AppSettings, v string) error {
			return setPositive(&s.Launcher.MaxResults, v)
		},
	},
	{
		label: "Debounce (ms)",
		kind:  kindNumber,
		get: func(s *domain.AppSettings) string {
			return strconv.FormatInt(s.Launcher.Debounce.Milliseconds(), 10)
		},
		set: func(s *domain.AppSettings, v string) error {
			var ms int
			if err := setPositive(&ms, v); err != nil {
				return err
			}
			s.Launcher.Debounce = time.Duration(ms) * time.Millisecond
			return nil
		},
	},
	{
		label: "Scripts directory",
		kind:  kindText,
		get:   func(s *domain.AppSettings) string { return s.Launcher.ScriptsDir },
		set: func(s *domain.AppSettings, v string) error {
			s.Launcher.ScriptsDir = v
			return nil
		},
	},
	{
		label: "Quit on hide",
		kind:  kindToggle,
		get:   func(s *domain.AppSettings) string { return onOff(s.Launcher.HideQuits) },
		set: func(s *domain.AppSettings, _ string) error {
			s.Launcher.HideQuits = !s.Launcher.HideQuits
			return nil
		},
	},
	{
		label: "Hide on focus loss",
		kind:  kindToggle,
		get:   func(s *domain.AppSettings) string { return onOff(s.Launcher.HideOnBlur) },
		set: func(s *domain.AppSettings, _ string) error {
			s.Launcher.HideOnBlur = !s.Launcher.HideOnBlur
			return nil
		},
	},
	{
		label: "Control address",
		kind:  kindText,
		get: func(s *domain.AppSettings) string {
			if s.IPC.Addr == "" {
				return "disabled"
			}
			return s.IPC.Addr
		},
		set: func(s *domain.AppSettings, v string) error {
			if v == "disabled" {
				v = ""
			}
			s.IPC.Addr = v
			return nil
		},
	},
	{
		label: "Browser history",
		kind:  kindReadOnly,
		get: func(s *domain.AppSettings) string {
			if len(s.Browser.Databases) == 0 {
				return "auto-detect"
			}
			return fmt.Sprintf("%d databases", len(s.Browser.Databases))
		},
	},
}

// View is the settings view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	selected int
	editing  bool
	editor   textinput.Model

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	editor := textinput.New()
	editor.CharLimit = 1024

	return &View{
		styles:          s,
		settingsService: settingsService,
		editor:          editor,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errNoService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSettings() tea.Cmd {
	svc := v.settingsService
	settings := *v.settings
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoService}
		}
		return messages.SettingsSaved{Err: svc.Save(&settings)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		v.saved = msg.Err == nil
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleListKey(msg)
	}

	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc, "q":
		return v, func() tea.Msg { return messages.CloseWindow{Window: messages.WindowSettings} }
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		f := fields[v.selected]
		switch f.kind {
		case kindReadOnly:
			return v, nil
		case kindToggle:
			_ = f.set(v.settings, "")
			return v, v.saveSettings()
		case kindText, kindNumber, kindList:
			v.editing = true
			v.saved = false
			v.editor.SetValue(f.get(v.settings))
			v.editor.CursorEnd()
			return v, v.editor.Focus()
		}
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		return v, nil
	case keyEnter:
		f := fields[v.selected]
		if err := f.set(v.settings, strings.TrimSpace(v.editor.Value())); err != nil {
			v.err = err
			return v, nil
		}
		v.stopEditing()
		return v, v.saveSettings()
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.editor.Blur()
	v.err = nil
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.settingsService != nil {
		b.WriteString(v.styles.Muted.Render(v.settingsService.Path()))
	}
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, f := range fields {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		value := f.get(v.settings)
		if i == v.selected && v.editing {
			value = v.editor.View()
		}

		line := fmt.Sprintf("%s%-20s %s", indicator, f.label, value)
		if i == v.selected && !v.editing {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.saved {
		b.WriteString(v.styles.Success.Render("Saved. Restart swordfish to apply."))
		b.WriteString("\n")
	}
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit/toggle  [esc] close")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.editor.Width = width - 26
}

// Reset resets the view to its initial state.
func (v *View) Reset() {
	v.selected = 0
	v.saved = false
	v.err = nil
	v.editing = false
	v.editor.SetValue("")
	v.editor.Blur()
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setPositive(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %q is not a positive number", domain.ErrInvalidInput, v)
	}
	*dst = n
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
