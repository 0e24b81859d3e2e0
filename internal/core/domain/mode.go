package domain

import (
	"encoding/json"
	"fmt"
)

// QueryMode selects which data sources the resolver consults.
// Modes form a fixed, ordered cycle; see ModeList.
type QueryMode int

// Available query modes, in cycle order.
const (
	// ModeSearch searches indexed files and applications.
	ModeSearch QueryMode = iota

	// ModeBrowserHistory searches browser history.
	ModeBrowserHistory

	// ModeScripts lists user scripts.
	ModeScripts

	// ModeChat is reserved for conversational queries.
	ModeChat
)

// ModeList is the fixed cycle order used by Next and Prev.
var ModeList = []QueryMode{ModeSearch, ModeBrowserHistory, ModeScripts, ModeChat}

// IsValid returns true if the mode is one of ModeList.
func (m QueryMode) IsValid() bool {
	return m >= 0 && int(m) < len(ModeList)
}

// Next returns the mode after m, wrapping to the first.
func (m QueryMode) Next() QueryMode {
	n := len(ModeList)
	return ModeList[(m.index()+1)%n]
}

// Prev returns the mode before m, wrapping to the last.
func (m QueryMode) Prev() QueryMode {
	n := len(ModeList)
	return ModeList[(m.index()-1+n)%n]
}

func (m QueryMode) index() int {
	if !m.IsValid() {
		return 0
	}
	return int(m)
}

// String returns the wire name of the mode.
func (m QueryMode) String() string {
	switch m {
	case ModeSearch:
		return "Search"
	case ModeBrowserHistory:
		return "BrowserHistory"
	case ModeScripts:
		return "Scripts"
	case ModeChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// Description returns a human-readable label for the mode.
func (m QueryMode) Description() string {
	switch m {
	case ModeSearch:
		return "Files & Apps"
	case ModeBrowserHistory:
		return "Browser History"
	case ModeScripts:
		return "Scripts"
	case ModeChat:
		return "Chat"
	default:
		return unknownDescription
	}
}

// ParseQueryMode converts a wire name into a mode.
func ParseQueryMode(s string) (QueryMode, error) {
	for _, m := range ModeList {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeSearch, fmt.Errorf("%w: query mode %q", ErrInvalidInput, s)
}

// MarshalJSON encodes the mode as its wire name.
func (m QueryMode) MarshalJSON() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: query mode %d", ErrInvalidInput, int(m))
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode from its wire name.
func (m *QueryMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseQueryMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
