// Package watch reports hand edits to the generated category files.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

// Change is a settled edit to one category file
type Change struct {
	Category models.Category
	Path     string
	Data     []byte
}

type Options struct {
	Debounce time.Duration
	// Ignore reports content this process wrote itself
	Ignore func(path string, data []byte) bool
	Log    *log.Logger
}

// Watcher debounces filesystem events below the nirify directory
type Watcher struct {
	paths    storage.Paths
	onChange func(Change)
	debounce time.Duration
	ignore   func(string, []byte) bool
	log      *log.Logger

	mu      sync.Mutex
	pending map[string]time.Time
}

func New(paths storage.Paths, onChange func(Change), opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = constants.WatchDebounce
	}
	return &Watcher{
		paths:    paths,
		onChange: onChange,
		debounce: opts.Debounce,
		ignore:   opts.Ignore,
		log:      logger.OrDefault(opts.Log),
		pending:  make(map[string]time.Time),
	}
}

func (w *Watcher) dirs() []string {
	seen := map[string]bool{}
	var out []string
	for _, cat := range models.AllCategories() {
		d := filepath.Dir(w.paths.CategoryFile(cat))
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// Run watches until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, d := range w.dirs() {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	w.log.Debug("watching generated files", "dir", w.paths.Dir)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if _, ok := w.paths.CategoryForPath(ev.Name); !ok {
				continue
			}
			w.mu.Lock()
			w.pending[ev.Name] = time.Now()
			w.mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

// flush delivers paths that have been quiet for the debounce interval
func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	var due []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			due = append(due, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range due {
		cat, _ := w.paths.CategoryForPath(path)
		data, err := os.ReadFile(path)
		if err != nil {
			// renamed away or deleted
			w.log.Debug("changed file not readable", "path", path, "err", err)
			continue
		}
		if w.ignore != nil && w.ignore(path, data) {
			continue
		}
		w.log.Info("external edit detected", "category", cat, "path", path)
		w.onChange(Change{Category: cat, Path: path, Data: data})
	}
}
