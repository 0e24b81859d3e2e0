package resolver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/quick"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// maxPreviewBytes bounds how much of a script is read for its preview.
const maxPreviewBytes = 64 * 1024

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

func fileResult(path string) domain.ResultEntry {
	name := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	preview := domain.FilePreview{
		Path:      path,
		Filename:  name,
		Extension: ext,
		FileType:  "File",
	}

	heading := name
	if appExtensions["."+strings.ToLower(ext)] {
		preview.FileType = "Application"
		heading = strings.TrimSuffix(name, filepath.Ext(name))
	}

	// The index can be older than the file system; stale paths still
	// show up, only without size and date.
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() && preview.FileType == "File" {
			preview.FileType = "Directory"
		}
		preview.Size = info.Size()
		preview.LastModified = info.ModTime().Format(time.RFC3339)
	}

	return domain.NewFileResult(heading, path, preview)
}

func scriptResult(path string, info os.FileInfo) domain.ResultEntry {
	content := readHead(path)
	language := languageFor(path, content)

	preview := domain.ScriptPreview{
		Path:         path,
		Language:     language,
		LastModified: info.ModTime().Format(time.RFC3339),
		Content:      content,
	}
	if highlighted, ok := highlight(content, language); ok {
		preview.ParsedContent = highlighted
	}

	return domain.ResultEntry{
		Heading:    filepath.Base(path),
		Subheading: path,
		Preview:    preview,
	}
}

func readHead(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, maxPreviewBytes)
	n, _ := f.Read(buf)
	return string(buf[:n])
}

// languageFor names the chroma lexer for a script, by file name first
// and by content second.
func languageFor(path, content string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil && content != "" {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return lexer.Config().Name
}

func highlight(content, language string) (string, bool) {
	if content == "" || lexers.Get(language) == nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, language, highlightFormatter, highlightStyle); err != nil {
		return "", false
	}
	return buf.String(), true
}
