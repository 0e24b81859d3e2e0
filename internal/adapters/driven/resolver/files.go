package resolver

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// appBonus lifts applications above plain files with a similar score.
const appBonus = 10

// appExtensions mark launchable application bundles and entries.
var appExtensions = map[string]bool{
	".app":     true,
	".desktop": true,
}

type scoredPath struct {
	path  string
	score int
}

func (e *Engine) searchFiles(ctx context.Context, term string) ([]domain.ResultEntry, error) {
	if e.index == nil {
		return []domain.ResultEntry{}, nil
	}

	if term == "" {
		indexed, err := e.index.List(ctx, e.cfg.MaxResults)
		if err != nil {
			return nil, err
		}
		results := make([]domain.ResultEntry, 0, len(indexed))
		for _, p := range indexed {
			results = append(results, fileResult(p.Path))
		}
		return results, nil
	}

	indexed, err := e.index.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(indexed))
	names := make([]string, len(indexed))
	for i, p := range indexed {
		paths[i] = p.Path
		names[i] = filepath.Base(p.Path)
	}

	scored := rankPaths(term, paths, names)
	results := make([]domain.ResultEntry, 0, e.limit(len(scored)))
	for _, s := range scored[:e.limit(len(scored))] {
		results = append(results, fileResult(s.path))
	}
	return results, nil
}

// rankPaths scores every path that fuzzy matches term. A match on the
// file name adds to the match on the full path.
func rankPaths(term string, paths, names []string) []scoredPath {
	scores := make(map[int]int)
	for _, m := range fuzzy.Find(term, paths) {
		scores[m.Index] += m.Score
	}
	for _, m := range fuzzy.Find(term, names) {
		scores[m.Index] += m.Score
	}

	scored := make([]scoredPath, 0, len(scores))
	for i, score := range scores {
		if appExtensions[strings.ToLower(filepath.Ext(paths[i]))] {
			score += appBonus
		}
		scored = append(scored, scoredPath{path: paths[i], score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].path < scored[j].path
	})
	return scored
}
