package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/FrozenTear/Nirify-sub003/internal/merge"
	"github.com/FrozenTear/Nirify-sub003/internal/niri"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	filesOK := false

	// Check 1: generated files readable
	if err := checkGeneratedFiles(ctx); err != nil {
		ctx.printf("❌ Generated files: FAIL\n")
		ctx.printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.printf("✓ Generated files: OK\n")
		filesOK = true
	}

	// Check 2: host config includes them
	if err := checkHostInclude(ctx); err != nil {
		ctx.printf("⚠ Host config include: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Host config include: OK\n")
	}

	// Check 3: settings are consistent (only if the files load)
	if filesOK {
		if err := checkValidation(ctx); err != nil {
			ctx.printf("❌ Settings validation: FAIL\n")
			ctx.printf("   Error: %v\n", err)
			hasError = true
		} else {
			ctx.printf("✓ Settings validation: OK\n")
		}
	} else {
		ctx.printf("⊘ Settings validation: SKIPPED (generated files not readable)\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.printf("⚠ Backups present: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Backups present: OK\n")
	}

	// Check 5: compositor (warning only)
	if err := checkCompositor(ctx); err != nil {
		ctx.printf("⚠ Compositor: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Compositor: OK\n")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkGeneratedFiles(ctx *Context) error {
	var bad []string
	for _, f := range ctx.App.Health() {
		if f.Status != storage.StatusOk {
			bad = append(bad, fmt.Sprintf("%s (%s)", f.Name, f.Status))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d file(s) not OK: %s", len(bad), strings.Join(bad, ", "))
	}
	return nil
}

func checkHostInclude(ctx *Context) error {
	paths := ctx.Resolved.Paths
	src, err := os.ReadFile(paths.HostConfig)
	if err != nil {
		return fmt.Errorf("cannot read host config: %w", err)
	}
	plan, err := merge.Plan(src, paths.IncludeTarget())
	if err != nil {
		return fmt.Errorf("host config does not parse: %w", err)
	}
	if !plan.HasInclude {
		return errors.New("host config does not include the generated files, run `nirify merge`")
	}
	if len(plan.DroppedNames) > 0 {
		return fmt.Errorf("host config still defines managed sections (%s), run `nirify merge`", strings.Join(plan.DroppedNames, ", "))
	}
	return nil
}

func checkValidation(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	res := ctx.App.Validate()
	for _, c := range res.Conflicts {
		ctx.printf("   - [%s] %s: %s\n", c.Severity, c.Category, c.Description)
	}
	if res.HasErrors() {
		return errors.New("conflicting settings found")
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.App.Backups().List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found")
	}
	ctx.printf("   Latest: %s\n", backups[0].Name)
	return nil
}

func checkCompositor(ctx *Context) error {
	if !niri.Running() {
		return errors.New("niri is not running, changes apply on next start")
	}
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if v, err := niri.NewClient(ctx.Resolved.Env.NiriSocket).Version(c); err == nil {
		ctx.printf("   niri %s\n", v)
	}
	out, err := niri.Validate(c, ctx.Resolved.Paths.HostConfig)
	if err != nil {
		if out != "" {
			return fmt.Errorf("%w\n%s", err, out)
		}
		return err
	}
	return nil
}
