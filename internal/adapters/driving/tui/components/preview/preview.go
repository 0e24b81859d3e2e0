// Package preview renders the details pane for the selected result.
package preview

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// Pane shows kind-specific details of one result.
type Pane struct {
	styles *styles.Styles
	entry  *domain.ResultEntry
	width  int
	height int
}

// NewPane creates a preview pane.
func NewPane(s *styles.Styles) *Pane {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Pane{styles: s, width: 40, height: 10}
}

// SetEntry sets the entry to preview. nil clears the pane.
func (p *Pane) SetEntry(entry *domain.ResultEntry) {
	p.entry = entry
}

// SetDimensions sets the pane size.
func (p *Pane) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// View renders the pane.
func (p *Pane) View() string {
	if p.entry == nil {
		return ""
	}

	var body []string
	switch pv := p.entry.Preview.(type) {
	case domain.FilePreview:
		body = p.file(pv)
	case domain.BrowserHistoryPreview:
		body = p.history(pv)
	case domain.ScriptPreview:
		body = p.script(pv)
	case domain.CalculatorPreview:
		body = []string{p.styles.Title.Render(p.entry.Heading), "", p.styles.Muted.Render(pv.ParsedContent)}
	case domain.ActionPreview:
		body = []string{p.styles.Title.Render(pv.Name), "", pv.Description}
		if pv.Author != "" {
			body = append(body, p.field("Author", pv.Author))
		}
	}

	lines := strings.Split(strings.Join(body, "\n"), "\n")
	if len(lines) > p.height {
		lines = lines[:p.height]
	}
	return p.styles.Preview.Width(p.width).Render(strings.Join(lines, "\n"))
}

func (p *Pane) field(label, value string) string {
	return p.styles.Muted.Render(label+": ") + p.styles.Normal.Render(value)
}

func (p *Pane) file(pv domain.FilePreview) []string {
	lines := []string{
		p.styles.Title.Render(pv.Filename),
		"",
		p.field("Type", pv.FileType),
		p.field("Path", pv.Path),
	}
	if pv.FileType != "Directory" {
		lines = append(lines, p.field("Size", humanize.IBytes(uint64(max(pv.Size, 0)))))
	}
	if pv.LastModified != "" {
		lines = append(lines, p.field("Modified", pv.LastModified))
	}
	return lines
}

func (p *Pane) history(pv domain.BrowserHistoryPreview) []string {
	title := pv.Title
	if title == "" {
		title = pv.URL
	}
	lines := []string{
		p.styles.Title.Render(title),
		"",
		p.field("URL", pv.URL),
		p.field("Browser", pv.Browser),
		p.field("Visits", humanize.Comma(pv.VisitCount)),
		p.field("Score", fmt.Sprintf("%.1f", pv.Frecency)),
	}
	if pv.LastVisit != "" {
		lines = append(lines, p.field("Last visit", pv.LastVisit))
	}
	return lines
}

func (p *Pane) script(pv domain.ScriptPreview) []string {
	content := pv.ParsedContent
	if content == "" {
		content = pv.Content
	}
	return []string{
		p.styles.Title.Render(pv.Path),
		p.styles.Muted.Render(pv.Language),
		"",
		strings.TrimRight(content, "\n"),
	}
}
