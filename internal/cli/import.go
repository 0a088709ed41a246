package cli

import (
	"github.com/FrozenTear/Nirify-sub003/internal/importer"
)

// ImportCmd reports what an import of the host config would produce
type ImportCmd struct {
	JSON bool `help:"Print the report as JSON."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	res := importer.ImportFile(ctx.Resolved.Paths.HostConfig)
	if c.JSON {
		return ctx.printJSON(res)
	}

	ctx.printf("Host config: %s\n\n", ctx.Resolved.Paths.HostConfig)
	ctx.printf("Imported sections (%d):\n", len(res.Imported))
	for _, s := range res.Imported {
		ctx.printf("  %-16s %d\n", s.Name, s.Count)
	}
	ctx.printf("\nDefaulted sections (%d):\n", len(res.Defaulted))
	for _, name := range res.Defaulted {
		ctx.printf("  %s\n", name)
	}
	if len(res.Warnings) > 0 {
		ctx.printf("\nWarnings (%d):\n", len(res.Warnings))
		for _, w := range res.Warnings {
			ctx.printf("  ⚠ %s\n", w)
		}
	}
	return nil
}
