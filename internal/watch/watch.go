// Package watch re-runs build checks when workspace files change.
//
// The watcher is recursive over the project directories and coalesces
// bursts of events behind a debounce window. Events that arrive while the
// callback runs are dropped: the checks may rewrite files, and those
// writes must not retrigger the checks.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultIgnoreDirs are directory basenames never watched: VCS metadata,
// virtualenvs, caches, and build output.
var DefaultIgnoreDirs = []string{
	".git",
	".venv",
	"node_modules",
	"__pycache__",
	".pytest_cache",
	"target",
	"_static",
}

// Config describes one watch session.
type Config struct {
	// Paths are the directory trees to watch.
	Paths []string

	// Debounce is the quiet period after the last event before the
	// callback fires. Zero means 500ms.
	Debounce time.Duration

	// IgnoreDirs overrides DefaultIgnoreDirs when non-nil.
	IgnoreDirs []string
}

// Watcher drives a debounced callback from filesystem events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	ignore   map[string]struct{}
}

// New creates a Watcher over the configured paths. Every subdirectory not
// in the ignore list joins the watch.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	ignoreDirs := cfg.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	ignore := make(map[string]struct{}, len(ignoreDirs))
	for _, dir := range ignoreDirs {
		ignore[dir] = struct{}{}
	}

	w := &Watcher{
		fsw:      fsw,
		roots:    append([]string{}, cfg.Paths...),
		debounce: debounce,
		ignore:   ignore,
	}

	for _, path := range cfg.Paths {
		if err := w.addTree(path); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}

	return w, nil
}

// Run blocks, invoking fn after each debounced burst of file events, until
// the context is cancelled.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	return w.run(ctx, w.fsw.Events, w.fsw.Errors, fn)
}

// run is the event loop, split out so tests can inject event channels.
func (w *Watcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, fn func()) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// New directories join the watch. Their contents
					// produce events of their own.
					w.addTree(event.Name)
					continue
				}
			}
			pending = true
			timer.Reset(w.debounce)

		case _, ok := <-errs:
			if !ok {
				return nil
			}
			// Ignore errors, keep watching

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			fn()
			drain(events, errs)
		}
	}
}

// drain discards events queued while the callback ran.
func drain(events <-chan fsnotify.Event, errs <-chan error) {
	for {
		select {
		case <-events:
		case <-errs:
		default:
			return
		}
	}
}

// relevant filters out chmod noise and anything under an ignored directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel := event.Name
	for _, root := range w.roots {
		if r, err := filepath.Rel(root, event.Name); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = r
			break
		}
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if _, skip := w.ignore[part]; skip {
			return false
		}
	}

	return true
}

// addTree registers root and every non-ignored subdirectory with the
// watcher.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Entries deleted mid-walk are skipped, not fatal.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, skip := w.ignore[d.Name()]; skip && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if path == root {
				return err
			}
			// Subdirectories can vanish between walk and watch.
			return nil
		}
		return nil
	})
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
