package domain

// Query is a resolver request: the raw search text and the active mode.
// An empty SearchString is a valid mode-only query.
type Query struct {
	SearchString string    `json:"search_string"`
	Mode         QueryMode `json:"mode"`
}

// QueryResponse is the resolver's answer to a Query.
// Result ordering is resolver-defined and preserved as-is.
type QueryResponse struct {
	Results []ResultEntry `json:"results"`

	// InlineResult is an optional inline-completion hint.
	InlineResult string `json:"inline_result,omitempty"`
}
