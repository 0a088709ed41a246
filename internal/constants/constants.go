package constants

import "time"

const (
	AppName = "nirify"

	// Directory and file names below the host config directory
	DirName         = "nirify"
	MainFileName    = "main.kdl"
	PrefsFileName   = "preferences.toml"
	BackupDirName   = "backups"
	CatalogFileName = "catalog.db"
	LogDirName      = "logs"
	LogFileName     = "nirify.log"
	HostConfigName  = "config.kdl"

	// GeneratedHeader opens every generated file
	GeneratedHeader = "// Generated by nirify. Edits to managed sections are overwritten on save."

	DefaultMaxBackups     = 14
	DefaultReloadInterval = 500 * time.Millisecond
	WatchDebounce         = 200 * time.Millisecond
	CompositorProcess     = "niri"

	FilePerm = 0o644
	DirPerm  = 0o755
)

// Environment variables
const (
	EnvConfigDir  = "NIRIFY_CONFIG_DIR"
	EnvHostConfig = "NIRIFY_HOST_CONFIG"
	EnvDebug      = "NIRIFY_DEBUG"
	EnvNiriSocket = "NIRI_SOCKET"
)

func init() {
	// Rotation must always keep the backup that was just taken
	if DefaultMaxBackups < 1 {
		panic("DefaultMaxBackups must be at least 1")
	}
}
