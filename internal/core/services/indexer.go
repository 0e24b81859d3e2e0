package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// DefaultReindexInterval is the minimum time between watch-triggered rebuilds.
const DefaultReindexInterval = 5 * time.Second

// ErrNoSearchDirectories is returned when no configured directory exists.
var ErrNoSearchDirectories = errors.New("no search directories available")

// IndexService walks the configured search directories and stores the
// paths found. Every rebuild is a complete reindex.
type IndexService struct {
	store    driven.IndexStore
	settings driving.SettingsService
	watcher  driven.FileWatcher
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewIndexService creates an index service. watcher may be nil, in which
// case Watch returns an error.
func NewIndexService(
	store driven.IndexStore,
	settings driving.SettingsService,
	watcher driven.FileWatcher,
) *IndexService {
	return &IndexService{
		store:    store,
		settings: settings,
		watcher:  watcher,
		limiter:  rate.NewLimiter(rate.Every(DefaultReindexInterval), 1),
		log:      logger.Component("indexer"),
	}
}

// SetReindexInterval changes how often the watcher may trigger a rebuild.
func (s *IndexService) SetReindexInterval(d time.Duration) {
	s.limiter.SetLimit(rate.Every(d))
}

// Rebuild walks the search directories and replaces the index.
func (s *IndexService) Rebuild(ctx context.Context) (domain.IndexStats, error) {
	cfg, err := s.settings.Get()
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("load settings: %w", err)
	}

	excludes, err := compileExcludes(cfg.Index.Exclude)
	if err != nil {
		return domain.IndexStats{}, err
	}

	roots := existingDirs(cfg.Index.SearchDirectories)
	if len(roots) == 0 {
		return domain.IndexStats{}, ErrNoSearchDirectories
	}

	logger.Section("Indexing")
	start := time.Now()

	var paths []string
	for _, root := range roots {
		found, err := walkRoot(ctx, root, cfg.Index.MaxDepth, excludes)
		if err != nil {
			return domain.IndexStats{}, err
		}
		paths = append(paths, found...)
	}

	if err := s.store.Replace(ctx, paths); err != nil {
		return domain.IndexStats{}, fmt.Errorf("replace index: %w", err)
	}

	s.log.Info().
		Int("paths", len(paths)).
		Int("roots", len(roots)).
		Dur("took", time.Since(start)).
		Msg("index rebuilt")

	return s.store.Stats(ctx)
}

// Watch rebuilds once, then again whenever the search directories change.
// Bursts of changes are coalesced into one rebuild per reindex interval.
func (s *IndexService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: file watching", domain.ErrUnsupportedPlatform)
	}

	if _, err := s.Rebuild(ctx); err != nil {
		return err
	}

	cfg, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	events, err := s.watcher.Watch(ctx, existingDirs(cfg.Index.SearchDirectories))
	if err != nil {
		return fmt.Errorf("watch search directories: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			s.log.Debug().Str("path", path).Msg("change detected")

			if err := s.limiter.Wait(ctx); err != nil {
				return nil
			}
			drainEvents(events)

			if _, err := s.Rebuild(ctx); err != nil {
				s.log.Warn().Err(err).Msg("reindex failed")
			}
		}
	}
}

// Stats summarises the current index.
func (s *IndexService) Stats(ctx context.Context) (domain.IndexStats, error) {
	return s.store.Stats(ctx)
}

func drainEvents(events <-chan string) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("%w: exclude pattern %q: %v", domain.ErrInvalidInput, p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func excluded(globs []glob.Glob, path string, isDir bool) bool {
	p := filepath.ToSlash(path)
	for _, g := range globs {
		if g.Match(p) || (isDir && g.Match(p+"/")) {
			return true
		}
	}
	return false
}

func existingDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

// isBundle reports whether a directory is an application bundle, which is
// indexed as a single entry.
func isBundle(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".app")
}

func walkRoot(ctx context.Context, root string, maxDepth int, excludes []glob.Glob) ([]string, error) {
	var paths []string
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		isDir := d.IsDir()
		if excluded(excludes, path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			return nil
		case isDir && isBundle(d.Name()):
			paths = append(paths, path)
			return fs.SkipDir
		case isDir:
			depth := strings.Count(path, string(filepath.Separator)) - rootDepth
			if maxDepth > 0 && depth >= maxDepth {
				return fs.SkipDir
			}
			return nil
		default:
			paths = append(paths, path)
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}
