// Package filesystem resolves documentation paths below a content root
// and watches the tree for changes.
package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// DefaultDebounce coalesces bursts of filesystem events into one signal.
const DefaultDebounce = 2 * time.Second

// Ensure Resolver implements the interface.
var _ driven.ContentResolver = (*Resolver)(nil)

// Resolver lists Markdown and MDX files below a content root.
type Resolver struct {
	root    string
	exclude []string
}

// New creates a resolver over root. Exclude patterns are matched against
// slash-separated paths relative to the root.
func New(root string, exclude []string) *Resolver {
	return &Resolver{root: root, exclude: exclude}
}

// Resolve walks the content root and returns relative paths of all
// .md/.mdx files, sorted for deterministic pipeline ordering.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(r.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != r.root {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".mdx" {
			return nil
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if r.excluded(rel) {
			logger.Debug("Excluding %s", rel)
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// excluded reports whether a relative path matches any exclude pattern.
// Patterns match either the full path or its base name.
func (r *Resolver) excluded(rel string) bool {
	for _, pattern := range r.exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Watch emits a signal whenever documentation below the root changes.
// Event bursts are debounced. The channel closes when ctx is cancelled.
func (r *Resolver) Watch(ctx context.Context, debounce time.Duration) (<-chan struct{}, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := r.addRecursive(watcher); err != nil {
		watcher.Close()
		return nil, err
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(signals)

		var timer *time.Timer
		var timerC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories must be watched as they appear.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				logger.Debug("Content change: %s", event)
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					timer.Reset(debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case signals <- struct{}{}:
				default:
				}
			}
		}
	}()

	return signals, nil
}

// addRecursive watches the root and every subdirectory.
func (r *Resolver) addRecursive(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") && path != r.root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
