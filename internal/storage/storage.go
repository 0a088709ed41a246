// Package storage persists settings as one generated file per category
// and loads them back with per-file fault isolation.
package storage

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/generator"
	"github.com/FrozenTear/Nirify-sub003/internal/importer"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// FileError reports a failed read or write of one generated file
type FileError struct {
	Category string
	Path     string
	Op       string
	Err      error
}

func (e *FileError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Path, e.Category, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

type writeFunc func(path string, data []byte, perm os.FileMode) error

// Store reads and writes the generated files below Paths.Dir
type Store struct {
	paths     Paths
	log       *log.Logger
	writeFile writeFunc

	mu      sync.Mutex
	written map[string][32]byte
}

func New(paths Paths, l *log.Logger) *Store {
	return &Store{
		paths:     paths,
		log:       logger.OrDefault(l),
		writeFile: AtomicWriteFile,
		written:   make(map[string][32]byte),
	}
}

func (s *Store) Paths() Paths { return s.paths }

// write stores data at path and remembers its hash
func (s *Store) write(path string, data []byte) error {
	if err := s.writeFile(path, data, constants.FilePerm); err != nil {
		return err
	}
	s.mu.Lock()
	s.written[path] = sha256.Sum256(data)
	s.mu.Unlock()
	return nil
}

// WroteContent reports whether data is exactly what this store last wrote
// to path. The watcher uses it to ignore its own writes.
func (s *Store) WroteContent(path string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.written[path]
	return ok && sum == sha256.Sum256(data)
}

func (s *Store) saveCategory(cat models.Category, settings *models.Settings) error {
	path := s.paths.CategoryFile(cat)
	if err := s.write(path, []byte(generator.Generate(cat, settings))); err != nil {
		return &FileError{Category: cat.String(), Path: path, Op: "write", Err: err}
	}
	return nil
}

func (s *Store) saveMain() error {
	path := s.paths.MainFile()
	if err := s.write(path, []byte(generator.GenerateMain(models.AllCategories()))); err != nil {
		return &FileError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// SaveSettings writes every category file and main.kdl. A failed file does
// not stop the others; all failures are joined into the returned error.
func (s *Store) SaveSettings(settings *models.Settings) error {
	EnsureDirs(s.paths, s.log)
	var errs []error
	for _, cat := range models.AllCategories() {
		if err := s.saveCategory(cat, settings); err != nil {
			s.log.Warn("failed to save category", "category", cat, "err", err)
			errs = append(errs, err)
		}
	}
	if err := s.saveMain(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SaveDirty writes the files of the given categories only and returns how
// many were written. An empty set does no I/O.
func (s *Store) SaveDirty(settings *models.Settings, dirty []models.Category) (int, error) {
	if len(dirty) == 0 {
		return 0, nil
	}
	var errs []error
	written := 0
	for _, cat := range dirty {
		if err := s.saveCategory(cat, settings); err != nil {
			s.log.Warn("failed to save category", "category", cat, "err", err)
			errs = append(errs, err)
			continue
		}
		written++
	}
	s.log.Debug("saved dirty categories", "count", written)
	return written, errors.Join(errs...)
}

// LoadResult is the outcome of loading every category file
type LoadResult struct {
	Settings models.Settings
	Warnings []string
	// Failed lists the categories that fell back to their defaults
	Failed []models.Category
}

// LoadSettingsWithResult reads each category file independently. A file
// that cannot be read or parsed leaves its section at the default and adds
// a warning; the remaining sections still load.
func (s *Store) LoadSettingsWithResult() LoadResult {
	res := LoadResult{Settings: models.Default()}
	for _, cat := range models.AllCategories() {
		path := s.paths.CategoryFile(cat)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s is missing, using defaults", cat, path))
			} else {
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v, using defaults", cat, err))
			}
			res.Failed = append(res.Failed, cat)
			s.log.Warn("failed to read category file", "category", cat, "path", path, "err", err)
			continue
		}
		loaded, warnings, err := importer.ImportCategory(cat, data)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v, using defaults", cat, err))
			res.Failed = append(res.Failed, cat)
			s.log.Warn("failed to parse category file", "category", cat, "path", path, "err", err)
			continue
		}
		for _, w := range warnings {
			res.Warnings = append(res.Warnings, cat.String()+": "+w)
		}
		models.CopySection(&res.Settings, &loaded, cat)
	}
	return res
}

// LoadCategory reads a single category file
func (s *Store) LoadCategory(cat models.Category) (models.Settings, []string, error) {
	path := s.paths.CategoryFile(cat)
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Default(), nil, &FileError{Category: cat.String(), Path: path, Op: "read", Err: err}
	}
	return importer.ImportCategory(cat, data)
}

// BootstrapResult describes how the in-memory settings were obtained
type BootstrapResult struct {
	Settings models.Settings
	FirstRun bool
	Import   *importer.ImportResult
	Warnings []string
}

// Bootstrap imports the host config and writes every file when main.kdl
// does not exist yet, and loads the generated files otherwise.
func (s *Store) Bootstrap() (BootstrapResult, error) {
	if _, err := os.Stat(s.paths.MainFile()); err == nil {
		load := s.LoadSettingsWithResult()
		return BootstrapResult{Settings: load.Settings, Warnings: load.Warnings}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("cannot stat main file, treating as first run", "err", err)
	}

	imp := importer.ImportFile(s.paths.HostConfig)
	s.log.Info("first run import", "host", s.paths.HostConfig, "imported", len(imp.Imported), "warnings", len(imp.Warnings))
	res := BootstrapResult{
		Settings: imp.Settings,
		FirstRun: true,
		Import:   &imp,
		Warnings: imp.Warnings,
	}
	if err := s.SaveSettings(&res.Settings); err != nil {
		return res, fmt.Errorf("failed to write generated files: %w", err)
	}
	return res, nil
}
