package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

func TestExtractMode(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid mode results URI",
			uri:      "swordfish://modes/Scripts/results",
			expected: "Scripts",
		},
		{
			name:     "invalid prefix",
			uri:      "file://modes/Scripts/results",
			expected: "",
		},
		{
			name:     "missing results suffix",
			uri:      "swordfish://modes/Scripts",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractMode(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleIndexResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil index service returns zero stats", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		result, err := server.handleIndexResource(ctx, makeReadResourceRequest("swordfish://index"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"paths": 0`)
		assert.NotContains(t, result.Contents[0].Text, "last_updated")
	})

	t.Run("returns stats", func(t *testing.T) {
		index := &mockIndexService{stats: domain.IndexStats{
			Paths:       1200,
			LastUpdated: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Index: index})
		require.NoError(t, err)

		result, err := server.handleIndexResource(ctx, makeReadResourceRequest("swordfish://index"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"paths": 1200`)
		assert.Contains(t, result.Contents[0].Text, "2026-03-01T12:00:00Z")
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		index := &mockIndexService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Index: index})
		require.NoError(t, err)

		_, err = server.handleIndexResource(ctx, makeReadResourceRequest("swordfish://index"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading index stats")
	})
}

func TestServer_handleModesResource(t *testing.T) {
	server, err := NewServer(&Ports{Query: &mockQueryService{}})
	require.NoError(t, err)

	result, err := server.handleModesResource(context.Background(), makeReadResourceRequest("swordfish://modes"))

	require.NoError(t, err)
	text := result.Contents[0].Text
	for _, m := range domain.ModeList {
		assert.Contains(t, text, `"`+m.String()+`"`)
	}
	assert.Contains(t, text, "Files & Apps")
}

func TestServer_handleModeResultsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		_, err = server.handleModeResultsResource(ctx, makeReadResourceRequest("swordfish://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("unknown mode returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		_, err = server.handleModeResultsResource(ctx, makeReadResourceRequest("swordfish://modes/Email/results"))

		require.Error(t, err)
	})

	t.Run("lists empty query results", func(t *testing.T) {
		mockQuery := &mockQueryService{
			resp: &domain.QueryResponse{Results: []domain.ResultEntry{{
				Heading:    "backup.sh",
				Subheading: "/scripts/backup.sh",
				Preview:    domain.ScriptPreview{Path: "/scripts/backup.sh", Language: "Bash"},
			}}},
		}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		result, err := server.handleModeResultsResource(ctx, makeReadResourceRequest("swordfish://modes/Scripts/results"))

		require.NoError(t, err)
		assert.Equal(t, domain.ModeScripts, mockQuery.got.Mode)
		assert.Equal(t, "", mockQuery.got.SearchString)
		assert.Equal(t, 0, mockQuery.limit)
		assert.Contains(t, result.Contents[0].Text, "backup.sh")
		assert.Contains(t, result.Contents[0].Text, `"type": "Script"`)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{err: errors.New("resolver failed")}})
		require.NoError(t, err)

		_, err = server.handleModeResultsResource(ctx, makeReadResourceRequest("swordfish://modes/Search/results"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing Search results")
	})
}
