package domain

// SearchSession is a snapshot of the launcher's search state.
// The live aggregate is owned by the session controller; rendering
// code only ever sees copies.
type SearchSession struct {
	// SearchString is the current raw query text.
	SearchString string

	// Touched is true once the user typed a non-empty string since the
	// last reset. It gates history recall.
	Touched bool

	// Mode is the active query mode.
	Mode QueryMode

	// Cursor indexes Results. 0 <= Cursor < max(1, len(Results)).
	Cursor int

	// Results is the latest accepted resolver response.
	Results []ResultEntry

	// InlineResult is the resolver's inline-completion hint, if any.
	InlineResult string

	// Loading is true while the latest query has not been answered.
	Loading bool

	// History holds previously committed search strings, oldest first.
	History []string

	// HistoryIndex counts recall steps back from the newest history
	// entry. Zero means nothing is recalled.
	HistoryIndex int
}

// Query returns the resolver request for the current state.
func (s *SearchSession) Query() Query {
	return Query{SearchString: s.SearchString, Mode: s.Mode}
}

// Selected returns the result under the cursor.
func (s *SearchSession) Selected() (*ResultEntry, bool) {
	if len(s.Results) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Results) {
		return nil, false
	}
	return &s.Results[s.Cursor], true
}

// Clone returns a deep copy safe to hand to readers.
func (s *SearchSession) Clone() SearchSession {
	c := *s
	if s.Results != nil {
		c.Results = append([]ResultEntry(nil), s.Results...)
	}
	if s.History != nil {
		c.History = append([]string(nil), s.History...)
	}
	return c
}
