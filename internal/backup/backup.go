// Package backup keeps verbatim, timestamped copies of the host config
// before anything rewrites it.
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

const (
	FilePrefix      = "config-"
	FileSuffix      = ".kdl"
	timestampLayout = "20060102-150405"
)

// Reason records why a backup was taken
type Reason string

const (
	ReasonMerge   Reason = "merge"
	ReasonCorrupt Reason = "corrupt"
	ReasonRestore Reason = "restore"
	ReasonManual  Reason = "manual"
)

// Info describes one backup file. ID, Reason, Source and SHA256 come from
// the catalog and are empty when it has no record of the file.
type Info struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
	ID        string    `json:"id,omitempty"`
	Reason    Reason    `json:"reason,omitempty"`
	Source    string    `json:"source,omitempty"`
	SHA256    string    `json:"sha256,omitempty"`

	counter int
}

// Manager creates, lists, rotates and restores backups in one directory
type Manager struct {
	dir  string
	max  int
	log  *log.Logger
	now  func() time.Time
	open func() (*Catalog, error)
}

type Option func(*Manager)

// WithClock replaces time.Now for file naming
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithoutCatalog disables the sqlite catalog
func WithoutCatalog() Option {
	return func(m *Manager) { m.open = nil }
}

func NewManager(dir string, maxBackups int, l *log.Logger, opts ...Option) *Manager {
	if maxBackups < 1 {
		maxBackups = constants.DefaultMaxBackups
	}
	m := &Manager{
		dir: dir,
		max: maxBackups,
		log: logger.OrDefault(l),
		now: time.Now,
	}
	catalogPath := filepath.Join(dir, constants.CatalogFileName)
	m.open = func() (*Catalog, error) { return OpenCatalog(catalogPath, m.log) }
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Dir() string { return m.dir }

// Backup copies source into the backup directory
func (m *Manager) Backup(source string, reason Reason) (string, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return m.BackupData(source, data, reason)
}

// BackupData stores data, previously read from source, as a new backup
// and returns its path. Old backups beyond the limit are removed.
func (m *Manager) BackupData(source string, data []byte, reason Reason) (string, error) {
	path, err := m.store(source, data, reason)
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		m.log.Warn("failed to rotate old backups", "err", err)
	}
	return path, nil
}

func (m *Manager) store(source string, data []byte, reason Reason) (string, error) {
	if err := os.MkdirAll(m.dir, constants.DirPerm); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	now := m.now()
	path, err := nextPath(m.dir, now)
	if err != nil {
		return "", err
	}
	if err := storage.AtomicWriteFile(path, data, constants.FilePerm); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	sum := sha256.Sum256(data)
	rec := Record{
		ID:        uuid.NewString(),
		FileName:  filepath.Base(path),
		Source:    source,
		Reason:    reason,
		SHA256:    hex.EncodeToString(sum[:]),
		Size:      int64(len(data)),
		CreatedAt: now,
	}
	m.withCatalog(func(c *Catalog) error { return c.Insert(context.Background(), rec) })
	m.log.Info("backup created", "path", path, "reason", reason)
	return path, nil
}

// nextPath picks config-<timestamp>.kdl, adding -N when that name is taken
func nextPath(dir string, now time.Time) (string, error) {
	stamp := now.Format(timestampLayout)
	path := filepath.Join(dir, FilePrefix+stamp+FileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(dir, fmt.Sprintf("%s%s-%d%s", FilePrefix, stamp, counter, FileSuffix))
	}
}

// parseName extracts the timestamp and counter from a backup file name
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)
	counter := 0
	if len(stamp) > len(timestampLayout) {
		suffix, ok := strings.CutPrefix(stamp[len(timestampLayout):], "-")
		n, err := strconv.Atoi(suffix)
		if !ok || err != nil || n < 1 {
			return time.Time{}, 0, false
		}
		stamp, counter = stamp[:len(timestampLayout)], n
	}
	ts, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, counter, true
}

// List returns the backups newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, counter, ok := parseName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, e.Name()),
			Name:      e.Name(),
			Timestamp: ts,
			Size:      info.Size(),
			counter:   counter,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].counter > backups[j].counter
	})

	m.withCatalog(func(c *Catalog) error {
		records, err := c.ByFileName(context.Background())
		if err != nil {
			return err
		}
		for i := range backups {
			if r, ok := records[backups[i].Name]; ok {
				backups[i].ID = r.ID
				backups[i].Reason = r.Reason
				backups[i].Source = r.Source
				backups[i].SHA256 = r.SHA256
			}
		}
		return nil
	})
	return backups, nil
}

// rotate removes backups beyond the retention limit, oldest first
func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= m.max {
		return nil
	}
	var removed []string
	for _, b := range backups[m.max:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		removed = append(removed, b.Name)
	}
	m.withCatalog(func(c *Catalog) error { return c.Delete(context.Background(), removed...) })
	return nil
}

// Restore replaces target with the contents of the backup at path. The
// current target, if any, is backed up first.
func (m *Manager) Restore(path, target string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}

	var previous string
	if current, err := os.ReadFile(target); err == nil {
		// no rotation yet, it could remove the backup being restored
		previous, err = m.store(target, current, ReasonRestore)
		if err != nil {
			return "", fmt.Errorf("failed to backup current config before restore: %w", err)
		}
	}

	if err := storage.AtomicWriteFile(target, data, constants.FilePerm); err != nil {
		return previous, fmt.Errorf("failed to restore config: %w", err)
	}
	if err := m.rotate(); err != nil {
		m.log.Warn("failed to rotate old backups", "err", err)
	}
	m.log.Info("backup restored", "backup", path, "target", target)
	return previous, nil
}

// Resolve accepts a backup file name or path and returns its full path
func (m *Manager) Resolve(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) || strings.ContainsRune(nameOrPath, filepath.Separator) {
		return nameOrPath
	}
	return filepath.Join(m.dir, nameOrPath)
}

// withCatalog runs fn against the catalog. The backup files are the source
// of truth, so catalog failures only log.
func (m *Manager) withCatalog(fn func(*Catalog) error) {
	if m.open == nil {
		return
	}
	c, err := m.open()
	if err != nil {
		m.log.Warn("backup catalog unavailable", "err", err)
		return
	}
	defer c.Close()
	if err := fn(c); err != nil {
		m.log.Warn("backup catalog update failed", "err", err)
	}
}
