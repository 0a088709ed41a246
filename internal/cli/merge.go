package cli

import (
	"errors"

	"github.com/FrozenTear/Nirify-sub003/internal/merge"
)

var errCancelled = errors.New("cancelled")

// MergeCmd rewrites the host config to include the generated files
type MergeCmd struct {
	DryRun bool `help:"Show the result without writing anything."`
	Yes    bool `short:"y" help:"Do not ask for confirmation."`
	JSON   bool `help:"Print the result as JSON."`
}

func (c *MergeCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	plan, err := ctx.App.Merge(merge.Options{DryRun: true})
	if err != nil {
		return err
	}
	if c.DryRun {
		if c.JSON {
			return ctx.printJSON(plan)
		}
		ctx.printf("Would replace %d managed node(s) and keep %d.\n\n", plan.ReplacedCount, plan.PreservedCount)
		for _, w := range plan.Warnings {
			ctx.printf("⚠ %s\n", w)
		}
		ctx.printf("--- %s\n%s", ctx.Resolved.Paths.HostConfig, plan.Output)
		return nil
	}

	if plan.ReplacedCount == 0 && !plan.IncludeAdded && len(plan.Warnings) == 0 {
		ctx.println("Host config already includes the generated files, nothing to do.")
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm("Rewrite the host config?",
			"Managed sections move to the generated files. The original is backed up first.")
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	res, err := ctx.App.Merge(merge.Options{})
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.printJSON(res)
	}
	for _, w := range res.Warnings {
		ctx.printf("⚠ %s\n", w)
	}
	ctx.printf("✓ Merged %s: %d replaced, %d preserved\n", ctx.Resolved.Paths.HostConfig, res.ReplacedCount, res.PreservedCount)
	if res.BackupPath != "" {
		ctx.printf("  Original saved to %s\n", res.BackupPath)
	}
	return nil
}
