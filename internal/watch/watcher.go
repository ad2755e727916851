// Package watch revalidates the documentation tree when it changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"docsentry/internal/logging"
)

// docExtensions are the file types whose changes trigger revalidation.
var docExtensions = map[string]bool{
	".md":      true,
	".rst":     true,
	".yaml":    true,
	".yml":     true,
	".json":    true,
	".graphql": true,
	".proto":   true,
}

// Watcher watches documentation roots and fires a callback once changes have
// settled past the debounce window. Rapid editor saves collapse into one
// revalidation.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	roots       []string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	onSettled   func(ctx context.Context, paths []string)
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	Events        int
	Revalidations int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// New creates a Watcher over the given roots. Roots that do not exist are
// skipped. onSettled receives the settled paths, deduplicated.
func New(roots []string, debounce time.Duration, onSettled func(ctx context.Context, paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:     fsw,
		roots:       roots,
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		onSettled:   onSettled,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			logging.Get(logging.CategoryWatch).Warn("watch failed for %s: %v", root, err)
		}
	}

	go w.run(ctx)
	return nil
}

// addTree registers root and its subdirectories with the watcher.
func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		logging.WatchDebug("watching %s", path)
		return nil
	})
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher: %v", err)
	}
	logging.Watch("watcher stopped")
}

// run is the main event loop.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watch("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.fireSettled(ctx)
		}
	}
}

// handleEvent records a relevant filesystem event for debouncing. A created
// directory is added to the watch set so new doc trees are covered.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				logging.Get(logging.CategoryWatch).Warn("watch failed for new dir %s: %v", event.Name, err)
			}
			return
		}
	}

	if !docExtensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logging.WatchDebug("event %s: %s", event.Op, event.Name)

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = event.Name
	w.stats.LastEventTime = time.Now()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// fireSettled collects events past the debounce window and invokes the
// callback once for the whole batch.
func (w *Watcher) fireSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	if len(settled) > 0 {
		w.stats.Revalidations++
	}
	w.mu.Unlock()

	if len(settled) == 0 || w.onSettled == nil {
		return
	}

	logging.Watch("revalidating after %d settled changes", len(settled))
	w.onSettled(ctx, settled)
}

// GetStats returns a copy of the watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}
