package mcp

import (
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query resolves launcher queries.
	Query driving.QueryService

	// Index reports file index statistics.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Index is optional
	return nil
}
