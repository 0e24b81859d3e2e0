package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

const defaultLimit = 10

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the text typed into the launcher"`
	Mode  string `json:"mode,omitempty" jsonschema:"one of Search, BrowserHistory, Scripts, Chat (default Search)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results      []ResultOutput `json:"results"`
	Count        int            `json:"count"`
	InlineResult string         `json:"inline_result,omitempty"`
}

// ResultOutput represents a single launcher result.
type ResultOutput struct {
	Type       string `json:"type"`
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	Value      string `json:"value"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Search local files, apps, browser history and scripts the way the launcher does",
	}, s.handleQuery)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	mode := domain.ModeSearch
	if input.Mode != "" {
		m, err := domain.ParseQueryMode(input.Mode)
		if err != nil {
			return nil, QueryOutput{}, err
		}
		mode = m
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	resp, err := s.ports.Query.Query(ctx, domain.Query{Mode: mode, SearchString: input.Query}, limit)
	if err != nil {
		return nil, QueryOutput{}, fmt.Errorf("query: %w", err)
	}

	return nil, toOutput(resp), nil
}

func toOutput(resp *domain.QueryResponse) QueryOutput {
	out := QueryOutput{
		Results:      make([]ResultOutput, len(resp.Results)),
		Count:        len(resp.Results),
		InlineResult: resp.InlineResult,
	}
	for i := range resp.Results {
		e := &resp.Results[i]
		out.Results[i] = ResultOutput{
			Type:       e.Kind().String(),
			Heading:    e.Heading,
			Subheading: e.Subheading,
			Value:      e.Value(),
		}
	}
	return out
}
