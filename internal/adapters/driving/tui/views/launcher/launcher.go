// Package launcher provides the search palette view for the TUI.
package launcher

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/components/preview"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// Layout rows above the result list: three for the bordered input, one
// for the mode tabs and one blank.
const listTop = 5

// View is the palette: search input, mode tabs, results, preview and
// status bar. It renders session snapshots and owns no search state.
type View struct {
	styles    *styles.Styles
	input     *input.SearchInput
	list      *list.ResultList
	preview   *preview.Pane
	statusbar *status.Bar

	mode   domain.QueryMode
	err    error
	width  int
	height int
}

// NewView creates a new launcher view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		input:     input.NewSearchInput(s),
		list:      list.NewResultList(s),
		preview:   preview.NewPane(s),
		statusbar: status.NewBar(s, km),
	}
	v.SetDimensions(80, 24)
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// UpdateInput forwards msg to the search input.
func (v *View) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

// InputValue returns the text in the search input.
func (v *View) InputValue() string {
	return v.input.Value()
}

// FocusInput focuses the search input.
func (v *View) FocusInput() tea.Cmd {
	return v.input.Focus()
}

// Sync renders snap. The input follows the session so history recall and
// resets show up in the text field.
func (v *View) Sync(snap domain.SearchSession) {
	v.mode = snap.Mode
	v.input.SetValue(snap.SearchString)
	v.input.SetMode(snap.Mode)
	v.input.SetInline(snap.InlineResult)
	v.list.SetResults(snap.Results, snap.Cursor, snap.Loading)

	if entry, ok := snap.Selected(); ok {
		v.preview.SetEntry(entry)
	} else {
		v.preview.SetEntry(nil)
	}

	v.statusbar.SetMode(snap.Mode)
	v.statusbar.SetResultCount(len(snap.Results))
	switch {
	case v.err != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.err.Error())
	case snap.Loading:
		v.statusbar.SetState(status.StateLoading)
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

// SetError shows err in the status bar until it is cleared with nil.
func (v *View) SetError(err error) {
	v.err = err
}

// Err returns the error currently shown.
func (v *View) Err() error {
	return v.err
}

// SetIndexed sets the indexed path count shown in the status bar.
func (v *View) SetIndexed(n int) {
	v.statusbar.SetIndexed(n)
}

// ResultAt maps a screen row to a result index.
func (v *View) ResultAt(y int) (int, bool) {
	return v.list.IndexAt(y - listTop)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	rows := height - listTop - 1
	if rows < 1 {
		rows = 1
	}
	listWidth := width
	if width >= 100 {
		listWidth = width * 55 / 100
	}

	v.input.SetWidth(width)
	v.list.SetDimensions(listWidth, rows)
	v.preview.SetDimensions(width-listWidth-2, rows)
	v.statusbar.SetWidth(width)
}

// View renders the palette.
func (v *View) View() string {
	body := v.list.View()
	if v.width >= 100 {
		listWidth := v.width * 55 / 100
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listWidth).Render(body),
			v.preview.View(),
		)
	}

	used := listTop + lipgloss.Height(body) + 1
	filler := ""
	if gap := v.height - used; gap > 0 {
		filler = strings.Repeat("\n", gap)
	}

	return strings.Join([]string{
		v.input.View(),
		v.renderModes(),
		"",
		body + filler,
		v.statusbar.View(),
	}, "\n")
}

func (v *View) renderModes() string {
	tabs := make([]string, 0, len(domain.ModeList))
	for _, m := range domain.ModeList {
		if m == v.mode {
			tabs = append(tabs, v.styles.ActiveMode.Render(m.Description()))
		} else {
			tabs = append(tabs, v.styles.Mode.Render(m.Description()))
		}
	}
	return strings.Join(tabs, " ")
}
