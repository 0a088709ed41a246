package storage

import (
	"errors"
	"io/fs"
	"os"

	"github.com/FrozenTear/Nirify-sub003/internal/importer"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

type ConfigFileStatus int

const (
	StatusOk ConfigFileStatus = iota
	StatusCorrupted
	StatusUnreadable
	StatusMissing
)

func (s ConfigFileStatus) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusCorrupted:
		return "corrupted"
	case StatusUnreadable:
		return "unreadable"
	case StatusMissing:
		return "missing"
	}
	return "unknown"
}

func (s ConfigFileStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FileHealth is the status of one generated file. Name is the category
// name, or "main" for main.kdl.
type FileHealth struct {
	Name   string           `json:"name"`
	Path   string           `json:"path"`
	Status ConfigFileStatus `json:"status"`
	Detail string           `json:"detail,omitempty"`
}

// Healthy reports whether every file is ok
func Healthy(files []FileHealth) bool {
	for _, f := range files {
		if f.Status != StatusOk {
			return false
		}
	}
	return true
}

// CheckConfigHealth classifies main.kdl and every category file. It only
// reads.
func (s *Store) CheckConfigHealth() []FileHealth {
	out := make([]FileHealth, 0, models.CategoryCount+1)
	out = append(out, checkFile("main", s.paths.MainFile(), func(data []byte) error {
		_, err := kdl.Parse(data)
		return err
	}))
	for _, cat := range models.AllCategories() {
		out = append(out, checkFile(cat.String(), s.paths.CategoryFile(cat), func(data []byte) error {
			_, _, err := importer.ImportCategory(cat, data)
			return err
		}))
	}
	return out
}

func checkFile(name, path string, parse func([]byte) error) FileHealth {
	h := FileHealth{Name: name, Path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		h.Status = StatusMissing
	case err != nil:
		h.Status = StatusUnreadable
		h.Detail = err.Error()
	default:
		if err := parse(data); err != nil {
			h.Status = StatusCorrupted
			h.Detail = err.Error()
		}
	}
	return h
}
