package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/FrozenTear/Nirify-sub003/internal/config"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	paths := ctx.Resolved.Paths
	res, err := ctx.App.Bootstrap()
	if err != nil {
		return err
	}

	prefs := paths.PrefsFile()
	if _, err := os.Stat(prefs); errors.Is(err, fs.ErrNotExist) {
		if err := config.SavePreferences(prefs, ctx.App.Preferences()); err != nil {
			ctx.Log.Warn("failed to write preferences", "err", err)
		}
	}

	if !res.FirstRun {
		ctx.printf("Already initialized at: %s\n", paths.Dir)
		for _, w := range res.Warnings {
			ctx.printf("  ⚠ %s\n", w)
		}
		return nil
	}

	ctx.printf("Initialized nirify at: %s\n", paths.Dir)
	if res.Import != nil {
		ctx.printf("  %d sections imported, %d defaulted\n", len(res.Import.Imported), len(res.Import.Defaulted))
		for _, w := range res.Import.Warnings {
			ctx.printf("  ⚠ %s\n", w)
		}
	}
	ctx.printf("\nRun `nirify merge` to point %s at the generated files.\n", paths.HostConfig)
	return nil
}
