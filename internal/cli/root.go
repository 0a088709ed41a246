package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/FrozenTear/Nirify-sub003/internal/app"
	"github.com/FrozenTear/Nirify-sub003/internal/config"
)

// Context is handed to every command's Run
type Context struct {
	App      *app.Context
	Resolved config.Resolved
	Log      *log.Logger
	Out      io.Writer
	// Confirm asks a yes/no question; tests replace it
	Confirm func(title, description string) (bool, error)
}

func NewContext(a *app.Context, res config.Resolved, l *log.Logger) *Context {
	return &Context{App: a, Resolved: res, Log: l, Out: os.Stdout, Confirm: confirm}
}

func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// load bootstraps the settings and prints warnings worth seeing
func (ctx *Context) load() error {
	res, err := ctx.App.Bootstrap()
	if err != nil {
		return err
	}
	if res.FirstRun {
		ctx.printf("Imported %s into %s\n", ctx.Resolved.Paths.HostConfig, ctx.Resolved.Paths.Dir)
	}
	for _, w := range res.Warnings {
		ctx.Log.Warn(w)
	}
	return nil
}

func (ctx *Context) printf(format string, args ...any) {
	fmt.Fprintf(ctx.Out, format, args...)
}

func (ctx *Context) println(args ...any) {
	fmt.Fprintln(ctx.Out, args...)
}

func (ctx *Context) printJSON(v any) error {
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}
