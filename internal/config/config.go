// Package config resolves file locations and loads the app's own
// preferences, which are separate from the compositor settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

// Preferences is preferences.toml
type Preferences struct {
	Theme              models.Theme `toml:"theme"`
	ReloadOnSave       bool         `toml:"reload_on_save"`
	ReloadIntervalMs   int          `toml:"reload_interval_ms"`
	WatchExternalEdits bool         `toml:"watch_external_edits"`
	MaxBackups         int          `toml:"max_backups"`

	// ThemeIndex is the old integer theme setting. It is read, migrated
	// into Theme and never written back.
	ThemeIndex *int `toml:"theme_index,omitempty"`
}

var (
	reloadIntervalRange = models.IntRange{Min: 100, Max: 60000}
	maxBackupsRange     = models.IntRange{Min: 1, Max: 100}
)

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              models.ThemeSystem,
		ReloadOnSave:       true,
		ReloadIntervalMs:   int(constants.DefaultReloadInterval / time.Millisecond),
		WatchExternalEdits: true,
		MaxBackups:         constants.DefaultMaxBackups,
	}
}

func (p Preferences) ReloadInterval() time.Duration {
	return time.Duration(p.ReloadIntervalMs) * time.Millisecond
}

// themeFromIndex maps the legacy theme_index. Unknown values fall back to
// the system theme.
func themeFromIndex(i int) models.Theme {
	switch i {
	case 1:
		return models.ThemeLight
	case 2:
		return models.ThemeDark
	}
	return models.ThemeSystem
}

// normalize migrates legacy fields and pulls values into range
func (p *Preferences) normalize() []string {
	var warnings []string
	if p.ThemeIndex != nil {
		if p.Theme == "" {
			p.Theme = themeFromIndex(*p.ThemeIndex)
		}
		p.ThemeIndex = nil
	}
	if p.Theme == "" {
		p.Theme = models.ThemeSystem
	}
	if !models.ValidEnum(p.Theme, models.Themes) {
		warnings = append(warnings, fmt.Sprintf("theme %q is not one of %s, using system", p.Theme, strings.Join(models.EnumStrings(models.Themes), ", ")))
		p.Theme = models.ThemeSystem
	}
	if v := reloadIntervalRange.Clamp(p.ReloadIntervalMs); v != p.ReloadIntervalMs {
		warnings = append(warnings, fmt.Sprintf("reload_interval_ms %d out of range, using %d", p.ReloadIntervalMs, v))
		p.ReloadIntervalMs = v
	}
	if v := maxBackupsRange.Clamp(p.MaxBackups); v != p.MaxBackups {
		warnings = append(warnings, fmt.Sprintf("max_backups %d out of range, using %d", p.MaxBackups, v))
		p.MaxBackups = v
	}
	return warnings
}

// LoadPreferences reads path over the defaults. A missing file yields the
// defaults; unknown keys and corrected values are returned as warnings.
func LoadPreferences(path string) (Preferences, []string, error) {
	p := DefaultPreferences()
	// left empty so a legacy theme_index can fill it
	p.Theme = ""
	md, err := toml.DecodeFile(path, &p)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultPreferences(), nil, nil
	}
	if err != nil {
		return DefaultPreferences(), nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown preference %q ignored", key.String()))
	}
	warnings = append(warnings, p.normalize()...)
	return p, warnings, nil
}

// SavePreferences writes p atomically
func SavePreferences(path string, p Preferences) error {
	p.normalize()

	var buf bytes.Buffer
	buf.WriteString("# nirify preferences\n\n")
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := storage.AtomicWriteFile(path, buf.Bytes(), constants.FilePerm); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Env holds the environment variables nirify reads
type Env struct {
	ConfigDir  string
	HostConfig string
	Debug      bool
	NiriSocket string
}

func readEnv() Env {
	debug, _ := strconv.ParseBool(os.Getenv(constants.EnvDebug))
	return Env{
		ConfigDir:  os.Getenv(constants.EnvConfigDir),
		HostConfig: os.Getenv(constants.EnvHostConfig),
		Debug:      debug,
		NiriSocket: os.Getenv(constants.EnvNiriSocket),
	}
}

// loadDotEnv loads each existing file. Variables already set in the
// process environment win.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Flags are command-line overrides; empty means unset
type Flags struct {
	ConfigDir  string
	HostConfig string
	Debug      bool
}

// Resolved is the outcome of Resolve
type Resolved struct {
	Paths storage.Paths
	Env   Env
	Debug bool
}

// Resolve determines the paths in order: flags, environment, .env files
// (the working directory, then the nirify directory), defaults.
func Resolve(flags Flags) (Resolved, error) {
	loadDotEnv(".env")
	res, err := resolve(flags, readEnv())
	if err != nil {
		return res, err
	}
	loadDotEnv(filepath.Join(res.Paths.Dir, ".env"))
	return resolve(flags, readEnv())
}

func resolve(flags Flags, env Env) (Resolved, error) {
	res := Resolved{Env: env, Debug: flags.Debug || env.Debug}

	host := first(flags.HostConfig, env.HostConfig)
	dir := first(flags.ConfigDir, env.ConfigDir)
	if host == "" || dir == "" {
		def, err := storage.DefaultPaths()
		if err != nil {
			return res, fmt.Errorf("failed to determine config location: %w", err)
		}
		if host == "" {
			host = def.HostConfig
		}
		if dir == "" {
			// generated files live next to the host config they serve
			dir = filepath.Join(filepath.Dir(host), constants.DirName)
		}
	}
	res.Paths = storage.Paths{HostConfig: expandHome(host), Dir: expandHome(dir)}
	return res, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
