package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the editor section of the config file when it changes
// and hands the new values to subscribers.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration

	mu       sync.Mutex
	onChange []func(EditorConfig)
}

// NewWatcher watches the directory holding path, so editors that save by
// rename are still noticed.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:     path,
		watcher:  watcher,
		logger:   logger,
		debounce: 100 * time.Millisecond,
	}, nil
}

// OnChange registers fn to be called after each successful reload
func (w *Watcher) OnChange(fn func(EditorConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Run watches until ctx is done, then releases the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	w.logger.Info("Configuration watcher started", zap.String("path", w.path))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info("Configuration watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg := defaults()
	if err := cfg.mergeFile(w.path); err != nil {
		w.logger.Error("Failed to reload configuration", zap.Error(err))
		return
	}
	if err := cfg.Editor.Validate(); err != nil {
		w.logger.Warn("Ignoring invalid configuration", zap.Error(err))
		return
	}

	w.mu.Lock()
	subscribers := append([]func(EditorConfig){}, w.onChange...)
	w.mu.Unlock()

	for _, fn := range subscribers {
		fn(cfg.Editor)
	}
	w.logger.Info("Configuration reloaded",
		zap.Int("figure_width", cfg.Editor.FigureWidth),
		zap.Int("figure_height", cfg.Editor.FigureHeight))
}
