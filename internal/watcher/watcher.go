// Package watcher keeps a collection in sync with a directory by
// ingesting text files as they are created or modified.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zioncloud/docqa/internal/core/ports/driving"
	"github.com/zioncloud/docqa/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is
// ingested. Editors fire several writes per save.
const DefaultDebounce = 500 * time.Millisecond

// DefaultExtensions are the file types picked up when none are given.
var DefaultExtensions = []string{".txt", ".md"}

// Config holds configuration for the watcher.
type Config struct {
	// Dir is the directory to watch (required).
	Dir string

	// Collection is the target collection (required).
	Collection string

	// Extensions filters which files are ingested (default: .txt, .md).
	Extensions []string

	// Debounce is the quiet period before ingesting (default: 500ms).
	Debounce time.Duration
}

// Watcher ingests files from a directory as they change.
type Watcher struct {
	ingest     driving.IngestService
	dir        string
	collection string
	extensions map[string]bool
	debounce   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher over cfg.Dir feeding cfg.Collection.
func New(ingest driving.IngestService, cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watcher: directory is required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("watcher: collection is required")
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}

	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &Watcher{
		ingest:     ingest,
		dir:        cfg.Dir,
		collection: cfg.Collection,
		extensions: extensions,
		debounce:   cfg.Debounce,
		pending:    make(map[string]*time.Timer),
	}, nil
}

// Run watches until the context is cancelled. Each create or write on a
// matching file schedules an ingest after the debounce period; further
// events on the same file reset the timer.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s -> collection %q", w.dir, w.collection)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.wanted(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// wanted reports whether the file's extension is watched.
func (w *Watcher) wanted(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// schedule (re)arms the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		n, err := w.ingest.IngestFile(ctx, path, w.collection)
		if err != nil {
			logger.Warn("ingest %s: %v", path, err)
			return
		}
		logger.Info("Ingested %s (%d points)", path, n)
	})
}

// cancelPending stops all armed timers.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
