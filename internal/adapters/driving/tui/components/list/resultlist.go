// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// shortcutCount is how many rows get an alt+n hint.
const shortcutCount = 9

// ResultList renders results one per row. It does not own the cursor;
// the session does, and the list only follows it.
type ResultList struct {
	results []domain.ResultEntry
	cursor  int
	offset  int
	loading bool
	styles  *styles.Styles
	width   int
	height  int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// SetResults updates the rows and the cursor, scrolling to keep the
// cursor visible.
func (r *ResultList) SetResults(results []domain.ResultEntry, cursor int, loading bool) {
	r.results = results
	r.cursor = cursor
	r.loading = loading
	r.scroll()
}

func (r *ResultList) scroll() {
	visible := r.visibleRows()
	switch {
	case r.cursor < r.offset:
		r.offset = r.cursor
	case r.cursor >= r.offset+visible:
		r.offset = r.cursor - visible + 1
	}
	if maxOffset := len(r.results) - visible; r.offset > maxOffset {
		r.offset = maxOffset
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func (r *ResultList) visibleRows() int {
	if r.height < 1 {
		return 1
	}
	return r.height
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		if r.loading {
			return r.styles.Muted.Render("Searching...")
		}
		return r.styles.Muted.Render("No results")
	}

	end := r.offset + r.visibleRows()
	if end > len(r.results) {
		end = len(r.results)
	}

	lines := make([]string, 0, end-r.offset)
	for i := r.offset; i < end; i++ {
		lines = append(lines, r.renderRow(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderRow(index int, entry *domain.ResultEntry) string {
	indicator := "  "
	if index == r.cursor {
		indicator = "> "
	}

	shortcut := "      "
	if index < shortcutCount {
		shortcut = fmt.Sprintf(" alt+%d", index+1)
	}

	heading := truncate(entry.Heading, r.width/2)
	sub := truncate(entry.Subheading, r.width-lipgloss.Width(heading)-len(indicator)-len(shortcut)-3)

	if index == r.cursor {
		return r.styles.Selected.Render(indicator+heading+"  "+sub) + r.styles.Shortcut.Render(shortcut)
	}
	return r.styles.Normal.Render(indicator+heading) + "  " +
		r.styles.Muted.Render(sub) + r.styles.Shortcut.Render(shortcut)
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// IndexAt returns the result shown on row y of the list (0 = first row).
func (r *ResultList) IndexAt(y int) (int, bool) {
	if y < 0 || y >= r.visibleRows() {
		return 0, false
	}
	i := r.offset + y
	if i >= len(r.results) {
		return 0, false
	}
	return i, true
}

// SetDimensions sets the component dimensions. height is in rows.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
	r.scroll()
}

// Offset returns the index of the first visible row.
func (r *ResultList) Offset() int {
	return r.offset
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}
