package resolver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// ListScripts returns the regular, non-hidden files in dir sorted by name.
// A missing directory has no scripts.
func ListScripts(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (e *Engine) searchScripts(term string) ([]domain.ResultEntry, error) {
	paths, err := ListScripts(e.cfg.ScriptsDir)
	if err != nil {
		return nil, err
	}

	if term != "" {
		names := make([]string, len(paths))
		for i, p := range paths {
			names[i] = filepath.Base(p)
		}
		matches := fuzzy.Find(term, names)
		matched := make([]string, 0, len(matches))
		for _, m := range matches {
			matched = append(matched, paths[m.Index])
		}
		paths = matched
	}

	results := make([]domain.ResultEntry, 0, e.limit(len(paths)))
	for _, p := range paths[:e.limit(len(paths))] {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		results = append(results, scriptResult(p, info))
	}
	return results, nil
}
