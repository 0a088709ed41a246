package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// Paths locates the host config and the directory of generated files
type Paths struct {
	HostConfig string
	Dir        string
}

// DefaultPaths resolves $XDG_CONFIG_HOME/niri/config.kdl and
// $XDG_CONFIG_HOME/niri/nirify.
func DefaultPaths() (Paths, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, ".config")
	}
	niri := filepath.Join(base, "niri")
	return Paths{
		HostConfig: filepath.Join(niri, constants.HostConfigName),
		Dir:        filepath.Join(niri, constants.DirName),
	}, nil
}

// CategoryFile is the generated file holding one category
func (p Paths) CategoryFile(cat models.Category) string {
	return filepath.Join(p.Dir, filepath.FromSlash(cat.FileName()))
}

func (p Paths) MainFile() string {
	return filepath.Join(p.Dir, constants.MainFileName)
}

func (p Paths) BackupDir() string {
	return filepath.Join(p.Dir, constants.BackupDirName)
}

func (p Paths) CatalogFile() string {
	return filepath.Join(p.BackupDir(), constants.CatalogFileName)
}

func (p Paths) PrefsFile() string {
	return filepath.Join(p.Dir, constants.PrefsFileName)
}

// IncludeTarget is the path the host config includes: relative to the
// host config's directory when the nirify dir lives below it, absolute
// otherwise.
func (p Paths) IncludeTarget() string {
	main := p.MainFile()
	hostDir := filepath.Dir(p.HostConfig)
	if rel, err := filepath.Rel(hostDir, main); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	if abs, err := filepath.Abs(main); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(main)
}

// IncludeDirective is the single line the merged host config starts with
func (p Paths) IncludeDirective() string {
	return kdl.FormatInline(kdl.NewNode("include", kdl.String(p.IncludeTarget())))
}

// CategoryForPath maps a generated file path back to its category
func (p Paths) CategoryForPath(path string) (models.Category, bool) {
	rel, err := filepath.Rel(p.Dir, path)
	if err != nil {
		return 0, false
	}
	rel = filepath.ToSlash(rel)
	for _, cat := range models.AllCategories() {
		if cat.FileName() == rel {
			return cat, true
		}
	}
	return 0, false
}

// EnsureDirs creates the directory tree for generated files. Failures are
// logged and not returned: existing files can still be opened, and a write
// into a missing directory reports its own error.
func EnsureDirs(p Paths, logger *log.Logger) {
	dirs := []string{p.Dir, p.BackupDir()}
	seen := map[string]bool{}
	for _, cat := range models.AllCategories() {
		d := filepath.Dir(p.CategoryFile(cat))
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, constants.DirPerm); err != nil && logger != nil {
			logger.Warn("failed to create directory", "dir", d, "err", err)
		}
	}
}
