package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// WatchCmd reloads hand edits of the generated files until interrupted
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.printf("Watching %s (Ctrl+C to stop)\n", ctx.Resolved.Paths.Dir)
	err := ctx.App.Watch(sigCtx, func(cat models.Category) {
		ctx.printf("↻ reloaded %s\n", cat)
	})
	return err
}
