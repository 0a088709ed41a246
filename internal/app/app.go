// Package app holds the process-wide state: the settings behind one lock,
// the dirty set and the collaborators that persist and reload them.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/FrozenTear/Nirify-sub003/internal/backup"
	"github.com/FrozenTear/Nirify-sub003/internal/config"
	"github.com/FrozenTear/Nirify-sub003/internal/importer"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/merge"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/niri"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
	"github.com/FrozenTear/Nirify-sub003/internal/validation"
	"github.com/FrozenTear/Nirify-sub003/internal/watch"
)

// ErrUpdatePanicked is returned by Update when the mutation panicked. The
// section is restored to its value before the call.
var ErrUpdatePanicked = errors.New("settings update panicked, changes discarded")

// Notifier is told after every successful flush
type Notifier interface {
	Notify()
}

type Options struct {
	// Reloader defaults to a niri.Reloader built from the preferences
	Reloader Notifier
	Backups  *backup.Manager
}

// Context is shared by every front end. Mutations take the lock; disk
// writes happen after it is released.
type Context struct {
	paths    storage.Paths
	prefs    config.Preferences
	log      *log.Logger
	store    *storage.Store
	dirty    *storage.DirtyTracker
	reloader Notifier
	backups  *backup.Manager

	mu       sync.RWMutex
	settings models.Settings
	poisoned bool

	// flushMu orders take, snapshot and write of concurrent flushes. It is
	// never held together with mu across disk I/O.
	flushMu sync.Mutex
}

func New(paths storage.Paths, prefs config.Preferences, l *log.Logger, opts Options) *Context {
	l = logger.OrDefault(l)
	c := &Context{
		paths:    paths,
		prefs:    prefs,
		log:      l,
		store:    storage.New(paths, l),
		dirty:    storage.NewDirtyTracker(),
		reloader: opts.Reloader,
		backups:  opts.Backups,
		settings: models.Default(),
	}
	if c.reloader == nil {
		c.reloader = niri.NewReloader(niri.NewClient(""), prefs.ReloadOnSave, prefs.ReloadInterval(), l)
	}
	if c.backups == nil {
		c.backups = backup.NewManager(paths.BackupDir(), prefs.MaxBackups, l)
	}
	return c
}

func (c *Context) Paths() storage.Paths { return c.paths }
func (c *Context) Preferences() config.Preferences { return c.prefs }
func (c *Context) Store() *storage.Store { return c.store }
func (c *Context) Backups() *backup.Manager { return c.backups }
func (c *Context) Logger() *log.Logger { return c.log }
func (c *Context) IsDirty(cat models.Category) bool { return c.dirty.IsDirty(cat) }
func (c *Context) DirtyCount() int { return c.dirty.Len() }

// Bootstrap loads the generated files, importing the host config first
// when they do not exist yet.
func (c *Context) Bootstrap() (storage.BootstrapResult, error) {
	res, err := c.store.Bootstrap()
	c.mu.Lock()
	c.settings = res.Settings.Clone()
	c.mu.Unlock()
	return res, err
}

// Snapshot returns a deep copy of the current settings
func (c *Context) Snapshot() models.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Clone()
}

// Poisoned reports whether an update has panicked since start
func (c *Context) Poisoned() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.poisoned
}

// Update runs fn on the live settings under the lock, then marks cat dirty
// and flushes. fn should only touch the section of cat.
func (c *Context) Update(cat models.Category, fn func(*models.Settings) error) error {
	if !cat.Valid() {
		return fmt.Errorf("invalid category %d", int(cat))
	}
	if err := c.apply(cat, fn); err != nil {
		return err
	}
	c.MarkDirty(cat)
	_, err := c.Flush()
	return err
}

func (c *Context) apply(cat models.Category, fn func(*models.Settings) error) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var saved models.Settings
	models.CopySection(&saved, &c.settings, cat)
	defer func() {
		if r := recover(); r != nil {
			models.CopySection(&c.settings, &saved, cat)
			c.poisoned = true
			c.log.Error("settings update panicked", "category", cat, "panic", r)
			err = ErrUpdatePanicked
		}
	}()
	if err := fn(&c.settings); err != nil {
		models.CopySection(&c.settings, &saved, cat)
		return err
	}
	return nil
}

// MarkDirty queues categories for the next flush
func (c *Context) MarkDirty(cats ...models.Category) {
	c.dirty.Mark(cats...)
}

// Flush writes every dirty category and asks the compositor to reload.
// Categories that failed to write stay dirty.
func (c *Context) Flush() (int, error) {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	cats := c.dirty.Take()
	if len(cats) == 0 {
		return 0, nil
	}
	snap := c.Snapshot()
	n, err := c.store.SaveDirty(&snap, cats)
	if err != nil {
		c.dirty.Mark(failedCategories(err)...)
	}
	if n > 0 {
		c.reloader.Notify()
	}
	return n, err
}

func failedCategories(err error) []models.Category {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	var out []models.Category
	for _, e := range errs {
		var fe *storage.FileError
		if !errors.As(e, &fe) {
			continue
		}
		if cat, err := models.ParseCategory(fe.Category); err == nil {
			out = append(out, cat)
		}
	}
	return out
}

// Regenerate writes every file unconditionally
func (c *Context) Regenerate() error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	c.dirty.Take()
	snap := c.Snapshot()
	err := c.store.SaveSettings(&snap)
	c.reloader.Notify()
	return err
}

// Shutdown saves whatever is still dirty, even after a panicked update,
// and waits for a pending reload.
func (c *Context) Shutdown() error {
	_, err := c.Flush()
	if w, ok := c.reloader.(interface{ Wait() }); ok {
		w.Wait()
	}
	if err != nil {
		c.log.Warn("final save incomplete", "err", err)
	}
	return err
}

func (c *Context) Health() []storage.FileHealth {
	return c.store.CheckConfigHealth()
}

func (c *Context) Validate() validation.Result {
	snap := c.Snapshot()
	return validation.Validate(&snap)
}

// Merge flushes pending edits and then rewrites the host config
func (c *Context) Merge(opts merge.Options) (merge.Result, error) {
	if !opts.DryRun {
		if _, err := c.Flush(); err != nil {
			return merge.Result{DryRun: opts.DryRun}, fmt.Errorf("failed to save pending changes: %w", err)
		}
	}
	if opts.Backups == nil {
		opts.Backups = c.backups
	}
	if opts.Log == nil {
		opts.Log = c.log
	}
	return merge.SmartReplace(c.paths, opts)
}

// HandleExternalEdit applies a hand edit of a generated file. A clean
// category is reloaded from disk; a dirty one keeps the in-memory value,
// which overwrites the edit at the next flush.
func (c *Context) HandleExternalEdit(ch watch.Change) bool {
	if c.dirty.IsDirty(ch.Category) {
		c.log.Warn("generated file edited while unsaved changes are pending, keeping in-memory values", "category", ch.Category, "path", ch.Path)
		return false
	}
	loaded, warnings, err := importer.ImportCategory(ch.Category, ch.Data)
	if err != nil {
		c.log.Warn("edited file could not be parsed, keeping current values", "category", ch.Category, "err", err)
		return false
	}
	for _, w := range warnings {
		c.log.Warn("edited file", "category", ch.Category, "warning", w)
	}
	c.mu.Lock()
	models.CopySection(&c.settings, &loaded, ch.Category)
	c.mu.Unlock()
	c.log.Info("reloaded edited category", "category", ch.Category)
	return true
}

// Watch reloads hand edits until ctx is done
func (c *Context) Watch(ctx context.Context, onReload func(models.Category)) error {
	w := watch.New(c.paths, func(ch watch.Change) {
		if c.HandleExternalEdit(ch) && onReload != nil {
			onReload(ch.Category)
		}
	}, watch.Options{Ignore: c.store.WroteContent, Log: c.log})
	return w.Run(ctx)
}
