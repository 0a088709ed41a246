package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// Dir is the nirify directory; logs go to Dir/logs
	Dir string
}

// Logger wraps the structured logger with the rotating file behind it
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to a rotating file, mirrored to stderr in
// debug mode. When the log directory cannot be created it falls back to
// stderr only.
func New(cfg Config) (*Logger, error) {
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	opts := log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	}

	logDir := filepath.Join(cfg.Dir, constants.LogDirName)
	if err := os.MkdirAll(logDir, constants.DirPerm); err != nil {
		return &Logger{Logger: log.NewWithOptions(os.Stderr, opts)}, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	return &Logger{Logger: log.NewWithOptions(writer, opts), file: fileWriter}, nil
}

// Close flushes and closes the log file
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDefault returns l, or the package default logger when l is nil
func OrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
