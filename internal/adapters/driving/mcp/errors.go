// Package mcp provides an MCP (Model Context Protocol) server adapter for swordfish.
// It lets AI assistants run launcher queries against the local resolver.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
