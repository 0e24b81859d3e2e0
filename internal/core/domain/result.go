package domain

import (
	"encoding/json"
	"fmt"
)

// ResultKind is the type discriminant of a ResultEntry.
type ResultKind string

// Available result kinds.
const (
	// KindFile is a file or application on disk.
	KindFile ResultKind = "File"

	// KindBrowserHistory is a visited URL.
	KindBrowserHistory ResultKind = "BrowserHistory"

	// KindScript is a user script.
	KindScript ResultKind = "Script"

	// KindAction is a launcher action (workflow).
	KindAction ResultKind = "Action"

	// KindCalculator is an evaluated arithmetic expression.
	KindCalculator ResultKind = "Calculator"
)

// IsValid returns true if the kind is recognised.
func (k ResultKind) IsValid() bool {
	switch k {
	case KindFile, KindBrowserHistory, KindScript, KindAction, KindCalculator:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ResultKind) String() string {
	return string(k)
}

// Preview is the kind-specific payload of a ResultEntry.
// The set of implementations is closed; the kind of an entry is
// always derived from its preview.
type Preview interface {
	Kind() ResultKind
	preview()
}

// FilePreview describes a file result.
type FilePreview struct {
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	Extension    string `json:"extension"`
	FileType     string `json:"fileType"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified,omitempty"`
}

// BrowserHistoryPreview describes a browser history result.
type BrowserHistoryPreview struct {
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	Browser    string  `json:"browser"`
	VisitCount int64   `json:"visitCount"`
	LastVisit  string  `json:"lastVisit,omitempty"`
	Frecency   float64 `json:"frecency"`
}

// ScriptPreview describes a script result.
// ParsedContent holds the syntax-highlighted source when available.
type ScriptPreview struct {
	Path          string `json:"path"`
	Language      string `json:"language"`
	LastModified  string `json:"lastModified,omitempty"`
	Content       string `json:"content"`
	ParsedContent string `json:"parsedContent,omitempty"`
}

// ActionPreview describes a launcher action.
type ActionPreview struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
	Published   string `json:"published,omitempty"`
}

// CalculatorPreview carries the rendered calculation.
type CalculatorPreview struct {
	Expression    string `json:"expression"`
	ParsedContent string `json:"parsedContent"`
}

// Kind implements Preview.
func (FilePreview) Kind() ResultKind { return KindFile }

// Kind implements Preview.
func (BrowserHistoryPreview) Kind() ResultKind { return KindBrowserHistory }

// Kind implements Preview.
func (ScriptPreview) Kind() ResultKind { return KindScript }

// Kind implements Preview.
func (ActionPreview) Kind() ResultKind { return KindAction }

// Kind implements Preview.
func (CalculatorPreview) Kind() ResultKind { return KindCalculator }

func (FilePreview) preview()           {}
func (BrowserHistoryPreview) preview() {}
func (ScriptPreview) preview()         {}
func (ActionPreview) preview()         {}
func (CalculatorPreview) preview()     {}

// ResultEntry is a single resolver result. Entries are immutable once received.
type ResultEntry struct {
	// Heading is the primary display text.
	Heading string

	// Subheading is the secondary display text. For most kinds it is
	// also the value that gets opened.
	Subheading string

	// IconPath is an optional path to an icon image.
	IconPath string

	// Preview is the kind-specific payload.
	Preview Preview
}

// Kind returns the entry's type discriminant.
func (e *ResultEntry) Kind() ResultKind {
	if e.Preview == nil {
		return ""
	}
	return e.Preview.Kind()
}

// Value returns the text to open or copy for this entry.
// Calculator entries yield the computed value; everything else
// yields the subheading (a path or URL).
func (e *ResultEntry) Value() string {
	if e.Kind() == KindCalculator {
		return e.Heading
	}
	return e.Subheading
}

// NewFileResult builds a file entry.
func NewFileResult(heading, path string, p FilePreview) ResultEntry {
	return ResultEntry{Heading: heading, Subheading: path, Preview: p}
}

// NewCalculatorResult builds a calculator entry for value computed from expr.
func NewCalculatorResult(value, expr, rendered string) ResultEntry {
	return ResultEntry{
		Heading:    value,
		Subheading: expr,
		Preview:    CalculatorPreview{Expression: expr, ParsedContent: rendered},
	}
}

type resultWire struct {
	Type       ResultKind      `json:"type"`
	Heading    string          `json:"heading"`
	Subheading string          `json:"subheading"`
	IconPath   string          `json:"iconPath,omitempty"`
	Preview    json.RawMessage `json:"preview"`
}

// MarshalJSON encodes the entry in the resolver wire shape.
func (e ResultEntry) MarshalJSON() ([]byte, error) {
	if e.Preview == nil {
		return nil, fmt.Errorf("%w: result %q has no preview", ErrInvalidInput, e.Heading)
	}
	preview, err := json.Marshal(e.Preview)
	if err != nil {
		return nil, fmt.Errorf("marshalling preview: %w", err)
	}
	return json.Marshal(resultWire{
		Type:       e.Preview.Kind(),
		Heading:    e.Heading,
		Subheading: e.Subheading,
		IconPath:   e.IconPath,
		Preview:    preview,
	})
}

// UnmarshalJSON decodes the resolver wire shape, selecting the preview
// type from the "type" discriminant.
func (e *ResultEntry) UnmarshalJSON(data []byte) error {
	var w resultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	preview, err := decodePreview(w.Type, w.Preview)
	if err != nil {
		return err
	}

	*e = ResultEntry{
		Heading:    w.Heading,
		Subheading: w.Subheading,
		IconPath:   w.IconPath,
		Preview:    preview,
	}
	return nil
}

func decodePreview(kind ResultKind, raw json.RawMessage) (Preview, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	switch kind {
	case KindFile:
		var p FilePreview
		err := json.Unmarshal(raw, &p)
		return p, wrapPreviewErr(kind, err)
	case KindBrowserHistory:
		var p BrowserHistoryPreview
		err := json.Unmarshal(raw, &p)
		return p, wrapPreviewErr(kind, err)
	case KindScript:
		var p ScriptPreview
		err := json.Unmarshal(raw, &p)
		return p, wrapPreviewErr(kind, err)
	case KindAction:
		var p ActionPreview
		err := json.Unmarshal(raw, &p)
		return p, wrapPreviewErr(kind, err)
	case KindCalculator:
		var p CalculatorPreview
		err := json.Unmarshal(raw, &p)
		return p, wrapPreviewErr(kind, err)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResultType, kind)
	}
}

func wrapPreviewErr(kind ResultKind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("decoding %s preview: %w", kind, err)
}
