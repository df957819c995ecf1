// Package watcher provides a debounced fsnotify watcher. scaff uses it to
// re-run the pipeline when the scaffold document changes and to push live
// reloads when generated output changes.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conneroisu/scaff/internal/logging"
)

// Event is one debounced file change.
type Event struct {
	Path    string
	Op      string
	ModTime time.Time
}

// Filter reports whether a changed path is interesting.
type Filter func(path string) bool

// Handler receives a debounced batch of changes.
type Handler func(events []Event)

// Watcher wraps fsnotify with debouncing: rapid bursts of change events
// (editors write, truncate, and rename in quick succession) collapse into a
// single handler call after a quiet interval.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      logging.Logger

	mu       sync.Mutex
	filters  []Filter
	handlers []Handler
	pending  []Event
	timer    *time.Timer
}

// New creates a watcher with the given debounce interval. A nil logger
// discards.
func New(debounce time.Duration, log logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		log:      log.WithComponent("watcher"),
	}, nil
}

// AddPath watches a file or directory. Watching a file registers its parent
// directory so editor rename-replace saves are still observed.
func (w *Watcher) AddPath(path string) error {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		if err := w.fsw.Add(filepath.Dir(path)); err != nil {
			return err
		}
		target := filepath.Clean(path)
		w.AddFilter(func(p string) bool {
			return filepath.Clean(p) == target
		})
		return nil
	}

	return w.fsw.Add(path)
}

// AddFilter adds a path filter. With multiple filters a path passes if any
// filter accepts it.
func (w *Watcher) AddFilter(filter Filter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filters = append(w.filters, filter)
}

// AddHandler adds a change handler.
func (w *Watcher) AddHandler(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start runs the watch loop until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Stop closes the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, err, "watch error")
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !w.accepted(event.Name) {
		return
	}

	ev := Event{Path: event.Name, Op: event.Op.String()}
	if info, err := os.Stat(event.Name); err == nil {
		ev.ModTime = info.ModTime()
	}

	w.log.Debug(ctx, "file change", "path", ev.Path, "op", ev.Op)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, ev)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) accepted(path string) bool {
	w.mu.Lock()
	filters := w.filters
	w.mu.Unlock()

	if len(filters) == 0 {
		return true
	}
	for _, filter := range filters {
		if filter(path) {
			return true
		}
	}

	return false
}

func (w *Watcher) flush() {
	w.mu.Lock()
	events := w.pending
	w.pending = nil
	handlers := w.handlers
	w.mu.Unlock()

	if len(events) == 0 {
		return
	}
	for _, handler := range handlers {
		handler(events)
	}
}
