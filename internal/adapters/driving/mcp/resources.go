package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for swordfish resources.
	uriScheme = "swordfish://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Statistics of the file index",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "modes",
		Name:        "modes",
		Description: "Query modes in launcher cycle order",
		MIMEType:    "application/json",
	}, s.handleModesResource)

	// What the launcher shows before anything is typed.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "modes/{mode}/results",
		Name:        "mode-results",
		Description: "Results listed by a mode for an empty query",
		MIMEType:    "application/json",
	}, s.handleModeResultsResource)
}

func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type indexInfo struct {
		Paths       int    `json:"paths"`
		LastUpdated string `json:"last_updated,omitempty"`
	}

	var info indexInfo
	if s.ports.Index != nil {
		stats, err := s.ports.Index.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading index stats: %w", err)
		}
		info.Paths = stats.Paths
		if !stats.LastUpdated.IsZero() {
			info.LastUpdated = stats.LastUpdated.UTC().Format(time.RFC3339)
		}
	}

	return jsonResult(req.Params.URI, info)
}

func (s *Server) handleModesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type modeInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	infos := make([]modeInfo, len(domain.ModeList))
	for i, m := range domain.ModeList {
		infos[i] = modeInfo{Name: m.String(), Description: m.Description()}
	}

	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleModeResultsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract mode from URI: swordfish://modes/{mode}/results
	mode, err := domain.ParseQueryMode(extractMode(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	resp, err := s.ports.Query.Query(ctx, domain.Query{Mode: mode}, 0)
	if err != nil {
		return nil, fmt.Errorf("listing %s results: %w", mode, err)
	}

	return jsonResult(req.Params.URI, toOutput(resp))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMode extracts the mode name from a URI like swordfish://modes/{mode}/results.
func extractMode(uri string) string {
	const prefix = uriScheme + "modes/"
	const suffix = "/results"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
