// Package watch reports new or rewritten archives in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"wadmaps/internal/logging"
)

// Handler receives the de-duplicated paths that changed within one debounce window.
type Handler func(ctx context.Context, paths []string)

// Watcher watches a single directory, without descending into subdirectories.
type Watcher struct {
	dir        string
	extensions []string
	debounce   time.Duration
	handler    Handler
	logger     *slog.Logger
	ready      chan struct{}
}

// New validates the arguments and returns a Watcher. Nothing is watched until Run.
func New(dir string, extensions []string, debounce time.Duration, handler Handler, logger *slog.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: handler is required")
	}
	if debounce <= 0 {
		return nil, errors.New("watch: debounce must be positive")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", dir, err)
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, strings.ToLower(ext))
	}
	return &Watcher{
		dir:        abs,
		extensions: exts,
		debounce:   debounce,
		handler:    handler,
		logger:     logging.NewComponentLogger(logger, "watch"),
		ready:      make(chan struct{}),
	}, nil
}

// Ready is closed once the directory is registered with the OS watcher.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Dir returns the absolute watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run blocks until ctx is cancelled or the OS watcher fails. Pending changes
// are dropped on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.dir, err)
	}
	close(w.ready)
	w.logger.Info("watching directory",
		logging.String(logging.FieldPath, w.dir),
		logging.Duration("debounce", w.debounce),
	)

	pending := make(map[string]struct{})
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer, timerC = nil, nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			slices.Sort(paths)
			w.logger.Debug("changes settled", logging.Int("files", len(paths)))
			w.handler(ctx, paths)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some changes may be missed"),
			)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext != "" && slices.Contains(w.extensions, ext)
}
