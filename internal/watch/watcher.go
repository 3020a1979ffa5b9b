// Package watch regenerates answer keys when their input file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"answerkey/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler is invoked once per settled burst of changes to the watched file.
type Handler func(ctx context.Context) error

// Watcher watches a single file. The parent directory is watched so that
// editors which save by rename are still seen.
type Watcher struct {
	target   string
	debounce time.Duration
	handler  Handler
	logger   *zap.Logger

	readyOnce sync.Once
	ready     chan struct{}

	mu    sync.Mutex
	stats Stats
}

// Stats counts watcher activity.
type Stats struct {
	Events   int
	Runs     int
	Failures int
}

// New creates a watcher for path.
func New(path string, debounce time.Duration, handler Handler, logger *zap.Logger) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch path required")
	}
	if handler == nil {
		return nil, errors.New("watch handler required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		target:   abs,
		debounce: debounce,
		handler:  handler,
		logger:   logging.For(logger, logging.CategoryWatch),
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run blocks until ctx is cancelled. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.target)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching input", zap.String("path", w.target), zap.Duration("debounce", w.debounce))
	w.readyOnce.Do(func() { close(w.ready) })

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("input changed", zap.String("op", event.Op.String()))
			w.mu.Lock()
			w.stats.Events++
			w.mu.Unlock()
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			w.fire(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) fire(ctx context.Context) {
	err := w.handler(ctx)

	w.mu.Lock()
	w.stats.Runs++
	if err != nil {
		w.stats.Failures++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("regeneration failed", zap.Error(err))
		return
	}
	w.logger.Debug("regeneration finished")
}
