package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/FrozenTear/Nirify-sub003/internal/app"
	"github.com/FrozenTear/Nirify-sub003/internal/cli"
	"github.com/FrozenTear/Nirify-sub003/internal/config"
	apperrors "github.com/FrozenTear/Nirify-sub003/internal/errors"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/niri"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigDir  string `help:"Directory of the generated files." type:"path"`
	HostConfig string `help:"Compositor config file." type:"path"`
	Debug      bool   `help:"Log debug output to stderr."`

	Tui        cli.TuiCmd        `cmd:"" help:"Browse and edit settings interactively." default:"1"`
	Init       cli.InitCmd       `cmd:"" help:"Import the host config and write the generated files."`
	Import     cli.ImportCmd     `cmd:"" help:"Show what importing the host config would produce."`
	Status     cli.StatusCmd     `cmd:"" help:"Show the health of every generated file."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run diagnostics."`
	Merge      cli.MergeCmd      `cmd:"" help:"Point the host config at the generated files."`
	Get        cli.GetCmd        `cmd:"" help:"Print a setting."`
	Set        cli.SetCmd        `cmd:"" help:"Change a setting and save it."`
	Fields     cli.FieldsCmd     `cmd:"" help:"List the settings available to get and set."`
	Regenerate cli.RegenerateCmd `cmd:"" help:"Rewrite every generated file."`
	Backup     cli.BackupCmd     `cmd:"" help:"Manage host config backups."`
	Watch      cli.WatchCmd      `cmd:"" help:"Reload hand edits of the generated files until interrupted."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("nirify"),
		kong.Description("Settings manager for the niri compositor"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	resolved, err := config.Resolve(config.Flags{
		ConfigDir:  CLI.ConfigDir,
		HostConfig: CLI.HostConfig,
		Debug:      CLI.Debug,
	})
	if err != nil {
		apperrors.Fatal(nil, err)
	}

	lg, err := logger.New(logger.Config{Debug: resolved.Debug, Dir: resolved.Paths.Dir})
	if err != nil {
		lg.Warn("file logging disabled", "err", err)
	}
	defer lg.Close()

	prefs, warnings, err := config.LoadPreferences(resolved.Paths.PrefsFile())
	if err != nil {
		lg.Warn("preferences unreadable, using defaults", "err", err)
	}
	for _, w := range warnings {
		lg.Warn(w)
	}

	reloader := niri.NewReloader(niri.NewClient(resolved.Env.NiriSocket), prefs.ReloadOnSave, prefs.ReloadInterval(), lg.Logger)
	appCtx := app.New(resolved.Paths, prefs, lg.Logger, app.Options{Reloader: reloader})

	err = ctx.Run(cli.NewContext(appCtx, resolved, lg.Logger))
	if shutdownErr := appCtx.Shutdown(); err == nil {
		err = shutdownErr
	}
	if apperrors.Fprint(os.Stderr, lg.Logger, err) {
		lg.Close()
		os.Exit(1)
	}
}
