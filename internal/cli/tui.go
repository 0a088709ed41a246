package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	p := tea.NewProgram(tui.NewModel(ctx.App), tea.WithAltScreen())

	if ctx.App.Preferences().WatchExternalEdits {
		watchCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := ctx.App.Watch(watchCtx, func(cat models.Category) {
				p.Send(tui.ReloadedMsg{Category: cat})
			})
			if err != nil {
				ctx.Log.Warn("watcher stopped", "err", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
