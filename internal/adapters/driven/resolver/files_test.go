package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

func TestSearchFiles_AppsFirst(t *testing.T) {
	e := New(Config{}, indexOf(
		"/docs/safari-notes.txt",
		"/apps/safari.app",
		"/docs/report.pdf",
	), nil, nil)

	resp, err := e.Resolve(context.Background(), domain.Query{SearchString: "safari", Mode: domain.ModeSearch})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "safari", resp.Results[0].Heading)
	assert.Equal(t, "/apps/safari.app", resp.Results[0].Value())
	preview, ok := resp.Results[0].Preview.(domain.FilePreview)
	require.True(t, ok)
	assert.Equal(t, "Application", preview.FileType)
	assert.Equal(t, "app", preview.Extension)
}

func TestSearchFiles_CapsResults(t *testing.T) {
	e := New(Config{MaxResults: 2}, indexOf("/a/one", "/a/two", "/a/three", "/a/four"), nil, nil)

	resp, err := e.Resolve(context.Background(), domain.Query{SearchString: "a", Mode: domain.ModeSearch})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
}

func TestSearchFiles_EmptyQueryListsIndex(t *testing.T) {
	index := indexOf("/a/one", "/a/two", "/a/three")
	e := New(Config{MaxResults: 2}, index, nil, nil)

	resp, err := e.Resolve(context.Background(), domain.Query{Mode: domain.ModeSearch})

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, headings(resp))
	assert.Equal(t, []int{2}, index.ListLimits)
}

func TestSearchFiles_NoIndex(t *testing.T) {
	e := New(Config{}, nil, nil, nil)

	resp, err := e.Resolve(context.Background(), domain.Query{SearchString: "x", Mode: domain.ModeSearch})

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestFileResult_StatsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	r := fileResult(path)

	preview := r.Preview.(domain.FilePreview)
	assert.Equal(t, "notes.txt", r.Heading)
	assert.Equal(t, int64(5), preview.Size)
	assert.NotEmpty(t, preview.LastModified)

	d := fileResult(dir).Preview.(domain.FilePreview)
	assert.Equal(t, "Directory", d.FileType)
}

func TestFileResult_StalePath(t *testing.T) {
	r := fileResult("/does/not/exist.txt")

	preview := r.Preview.(domain.FilePreview)
	assert.Equal(t, "exist.txt", preview.Filename)
	assert.Empty(t, preview.LastModified)
}
