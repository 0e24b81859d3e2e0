// Package fswatch implements driven.FileWatcher with fsnotify.
package fswatch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher watches directory trees. fsnotify only reports direct children,
// so every directory down to maxDepth is registered, including ones
// created while watching.
type Watcher struct {
	maxDepth int
	log      zerolog.Logger
}

// New creates a watcher that descends at most maxDepth levels (0 = unlimited).
func New(maxDepth int) *Watcher {
	return &Watcher{
		maxDepth: maxDepth,
		log:      logger.Component("fswatch"),
	}
}

// Watch implements driven.FileWatcher.
func (w *Watcher) Watch(ctx context.Context, roots []string) (<-chan string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	for _, root := range roots {
		if err := w.addTree(fsw, root, root); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	out := make(chan string, 16)
	go w.loop(ctx, fsw, roots, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, roots []string, out chan<- string) {
	defer close(out)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if root := rootOf(roots, event.Name); root != "" {
					// Errors here only mean the new entry is not a directory
					// or vanished again.
					_ = w.addTree(fsw, root, event.Name)
				}
			}

			select {
			case out <- event.Name:
			default:
				// A rebuild is already pending; dropping is harmless.
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("fsnotify watcher error")
		}
	}
}

// addTree registers dir and its subdirectories within maxDepth of root.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root, dir string) error {
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
		if w.maxDepth > 0 && depth >= w.maxDepth {
			return fs.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to add directory %s to watcher: %w", path, err)
		}
		return nil
	})
}

func rootOf(roots []string, path string) string {
	for _, r := range roots {
		if path == r || strings.HasPrefix(path, r+string(filepath.Separator)) {
			return r
		}
	}
	return ""
}
