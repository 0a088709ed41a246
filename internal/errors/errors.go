package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/merge"
	"github.com/FrozenTear/Nirify-sub003/internal/niri"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if h := Hint(err); h != "" {
		msg += "\nHint: " + h
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors the user can fix
func Hint(err error) string {
	var me *merge.MergeError
	switch {
	case stderrors.Is(err, merge.ErrNotGenerated):
		return "run `nirify init` to generate the managed files"
	case stderrors.As(err, &me) && me.BackupPath != "":
		return "restore the original with `nirify backup restore " + me.BackupPath + "`"
	case stderrors.Is(err, niri.ErrNoSocket):
		return "is niri running? NIRI_SOCKET is not set"
	case stderrors.Is(err, niri.ErrNotInstalled):
		return "install niri or add it to PATH"
	}
	return ""
}

// Fprint logs err and writes the formatted message to w. It reports
// whether there was an error.
func Fprint(w io.Writer, l *log.Logger, err error) bool {
	if err == nil {
		return false
	}
	logger.OrDefault(l).Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	return true
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(l *log.Logger, err error) {
	if Fprint(os.Stderr, l, err) {
		os.Exit(1)
	}
}
