package cli

import (
	"fmt"
	"path/filepath"

	"github.com/FrozenTear/Nirify-sub003/internal/backup"
)

type BackupCmd struct {
	List    BackupListCmd    `cmd:"" default:"1" help:"List backups of the host config."`
	Create  BackupCreateCmd  `cmd:"" help:"Back up the host config now."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the host config from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	backupPath, err := ctx.App.Backups().Backup(ctx.Resolved.Paths.HostConfig, backup.ReasonManual)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct {
	JSON bool `help:"Print the list as JSON."`
}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := ctx.App.Backups()
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if c.JSON {
		return ctx.printJSON(backups)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), ctx.App.Preferences().MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		reason := string(b.Reason)
		if reason == "" {
			reason = "-"
		}
		ctx.printf("  %s  %s  %-8s (%.1f KB)\n", timestamp, b.Name, reason, sizeKB)
	}
	ctx.printf("\nBackup directory: %s\n", mgr.Dir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := ctx.App.Backups()
	backupPath := mgr.Resolve(c.BackupFile)
	target := ctx.Resolved.Paths.HostConfig

	if !c.Yes {
		ok, err := ctx.Confirm(
			fmt.Sprintf("Restore %s from %s?", filepath.Base(target), filepath.Base(backupPath)),
			"The current file is backed up before it is replaced.")
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	previous, err := mgr.Restore(backupPath, target)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.printf("✓ Restored %s from %s\n", target, filepath.Base(backupPath))
	if previous != "" {
		ctx.printf("  Previous config saved to %s\n", filepath.Base(previous))
	}
	return nil
}
