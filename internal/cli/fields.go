package cli

import (
	"fmt"
	"strings"

	"github.com/FrozenTear/Nirify-sub003/internal/app"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

type GetCmd struct {
	Key string `arg:"" help:"Setting key, see 'nirify fields'."`
}

func (c *GetCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	v, err := ctx.App.Get(c.Key)
	if err != nil {
		return err
	}
	ctx.println(v)
	return nil
}

type SetCmd struct {
	Key   string `arg:"" help:"Setting key, see 'nirify fields'."`
	Value string `arg:"" help:"New value. Numbers outside the allowed range are clamped."`
}

func (c *SetCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	if err := ctx.App.Set(c.Key, c.Value); err != nil {
		return err
	}
	v, _ := ctx.App.Get(c.Key)
	ctx.printf("✓ %s = %s\n", c.Key, v)
	return nil
}

type FieldsCmd struct {
	Category string `arg:"" optional:"" help:"Only list fields of this category."`
}

func (c *FieldsCmd) Run(ctx *Context) error {
	var filter *models.Category
	if c.Category != "" {
		cat, err := models.ParseCategory(c.Category)
		if err != nil {
			return err
		}
		filter = &cat
	}

	for _, f := range app.Fields() {
		if filter != nil && f.Category != *filter {
			continue
		}
		help := f.Help
		if len(f.Options) > 0 {
			help += " [" + strings.Join(f.Options, "|") + "]"
		}
		ctx.printf("%-42s %-7s %s\n", f.Key, f.Kind, help)
	}
	return nil
}

// RegenerateCmd rewrites every generated file from the loaded settings
type RegenerateCmd struct{}

func (c *RegenerateCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	if err := ctx.App.Regenerate(); err != nil {
		return fmt.Errorf("regenerate failed: %w", err)
	}
	ctx.printf("✓ Rewrote %d files in %s\n", models.CategoryCount+1, ctx.Resolved.Paths.Dir)
	return nil
}
