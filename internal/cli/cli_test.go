package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FrozenTear/Nirify-sub003/internal/app"
	"github.com/FrozenTear/Nirify-sub003/internal/backup"
	"github.com/FrozenTear/Nirify-sub003/internal/config"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

type nopNotifier struct{}

func (nopNotifier) Notify() {}

const hostConfig = "layout {\n    gaps 12\n}\ncursor {\n    xcursor-size 32\n}\nmy-node 1\n"

func setupTestContext(t *testing.T, host string, answer bool) (*Context, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	paths := storage.Paths{HostConfig: filepath.Join(root, "config.kdl"), Dir: filepath.Join(root, "nirify")}
	if host != "" {
		if err := os.WriteFile(paths.HostConfig, []byte(host), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	prefs := config.DefaultPreferences()
	a := app.New(paths, prefs, logger.Discard(), app.Options{
		Reloader: nopNotifier{},
		Backups:  backup.NewManager(paths.BackupDir(), prefs.MaxBackups, logger.Discard(), backup.WithoutCatalog()),
	})
	var out bytes.Buffer
	ctx := &Context{
		App:      a,
		Resolved: config.Resolved{Paths: paths},
		Log:      logger.Discard(),
		Out:      &out,
		Confirm:  func(string, string) (bool, error) { return answer, nil },
	}
	return ctx, &out
}

func TestInitCmd(t *testing.T) {
	ctx, out := setupTestContext(t, hostConfig, true)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized nirify") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if _, err := os.Stat(ctx.Resolved.Paths.PrefsFile()); err != nil {
		t.Errorf("expected preferences file: %v", err)
	}

	out.Reset()
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Already initialized") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestImportCmdJSON(t *testing.T) {
	ctx, out := setupTestContext(t, hostConfig, true)

	if err := (&ImportCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	var report struct {
		Imported []struct {
			Name string `json:"name"`
		} `json:"imported_sections"`
		Defaulted []string `json:"defaulted_sections"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	names := map[string]bool{}
	for _, s := range report.Imported {
		names[s.Name] = true
	}
	if !names["appearance"] || !names["cursor"] {
		t.Errorf("expected appearance and cursor imported, got %+v", report.Imported)
	}
	if _, err := os.Stat(ctx.Resolved.Paths.MainFile()); err == nil {
		t.Error("import must not write files")
	}
}

func TestStatusCmd(t *testing.T) {
	ctx, out := setupTestContext(t, hostConfig, true)
	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "need attention") {
		t.Errorf("expected missing files before init:\n%s", out.String())
	}

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "All files OK.") {
		t.Errorf("expected healthy files:\n%s", out.String())
	}
}

func TestMergeCmd(t *testing.T) {
	ctx, out := setupTestContext(t, hostConfig, true)
	host := ctx.Resolved.Paths.HostConfig

	if err := (&MergeCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Would replace 2 managed node(s) and keep 1.") {
		t.Errorf("unexpected dry run output:\n%s", out.String())
	}
	if data, _ := os.ReadFile(host); string(data) != hostConfig {
		t.Error("dry run changed the host config")
	}

	if err := (&MergeCmd{}).Run(ctx); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	data, _ := os.ReadFile(host)
	if string(data) != "include \"nirify/main.kdl\"\n\nmy-node 1\n" {
		t.Errorf("unexpected merged config:\n%s", data)
	}

	out.Reset()
	if err := (&MergeCmd{}).Run(ctx); err != nil {
		t.Fatalf("second merge failed: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to do") {
		t.Errorf("expected no-op:\n%s", out.String())
	}
}

func TestMergeCmdDeclined(t *testing.T) {
	ctx, _ := setupTestContext(t, hostConfig, false)

	err := (&MergeCmd{}).Run(ctx)
	if !errors.Is(err, errCancelled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if data, _ := os.ReadFile(ctx.Resolved.Paths.HostConfig); string(data) != hostConfig {
		t.Error("declined merge changed the host config")
	}
}

func TestGetSetCmd(t *testing.T) {
	ctx, out := setupTestContext(t, hostConfig, true)

	if err := (&SetCmd{Key: "cursor.size", Value: "1000"}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(out.String(), "cursor.size = 128") {
		t.Errorf("expected clamped value:\n%s", out.String())
	}

	out.Reset()
	if err := (&GetCmd{Key: "cursor.size"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "128" {
		t.Errorf("unexpected value %q", out.String())
	}

	if err := (&GetCmd{Key: "nope"}).Run(ctx); err == nil {
		t.Error("expected unknown key error")
	}
}

func TestFieldsCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "", true)

	if err := (&FieldsCmd{Category: "cursor"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if !strings.HasPrefix(line, "cursor.") {
			t.Errorf("unexpected field line %q", line)
		}
	}
	if err := (&FieldsCmd{Category: "nope"}).Run(ctx); err == nil {
		t.Error("expected unknown category error")
	}
}

func TestBackupCmds(t *testing.T) {
	ctx, out := setupTestContext(t, hostConfig, true)
	host := ctx.Resolved.Paths.HostConfig

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	backups, _ := ctx.App.Backups().List()
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), backups[0].Name) {
		t.Errorf("expected backup listed:\n%s", out.String())
	}

	if err := os.WriteFile(host, []byte("broken {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if data, _ := os.ReadFile(host); string(data) != hostConfig {
		t.Errorf("expected restored content, got %q", data)
	}
}

func TestRegenerateCmd(t *testing.T) {
	ctx, _ := setupTestContext(t, hostConfig, true)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	cursor := filepath.Join(ctx.Resolved.Paths.Dir, "cursor.kdl")
	if err := os.WriteFile(cursor, []byte("cursor {"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (&RegenerateCmd{}).Run(ctx); err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if !storage.Healthy(ctx.App.Health()) {
		t.Error("expected every file healthy after regenerate")
	}
}
