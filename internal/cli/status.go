package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func statusStyle(s storage.ConfigFileStatus) lipgloss.Style {
	switch s {
	case storage.StatusOk:
		return okStyle
	case storage.StatusMissing:
		return warnStyle
	}
	return failStyle
}

type StatusCmd struct {
	JSON bool `help:"Print the report as JSON."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	files := ctx.App.Health()
	if c.JSON {
		return ctx.printJSON(files)
	}

	ctx.printf("Generated files in %s:\n\n", ctx.Resolved.Paths.Dir)
	for _, f := range files {
		status := statusStyle(f.Status).Render(f.Status.String())
		ctx.printf("  %-16s %s", f.Name, status)
		if f.Detail != "" {
			ctx.printf("  %s", f.Detail)
		}
		ctx.println()
	}
	ctx.println()
	if storage.Healthy(files) {
		ctx.println("All files OK.")
	} else {
		ctx.println("Some files need attention. Unreadable sections load with defaults; `nirify regenerate` rewrites them.")
	}
	return nil
}
