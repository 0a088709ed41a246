package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/testutil"
)

// stepClock returns a clock that advances one second per call
func stepClock(start time.Time) func() time.Time {
	t := start.Add(-time.Second)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func setupTestConfig(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.kdl", content)
	return path, filepath.Join(dir, "nirify", "backups")
}

func TestBackupIsVerbatim(t *testing.T) {
	content := "layout {\n    gaps 8\n}\n// trailing comment without newline"
	source, dir := setupTestConfig(t, content)
	mgr := NewManager(dir, 0, logger.Discard())

	path, err := mgr.Backup(source, ReasonManual)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), FilePrefix) || !strings.HasSuffix(path, FileSuffix) {
		t.Errorf("unexpected backup name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != content {
		t.Errorf("expected backup to equal source byte for byte")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	source, dir := setupTestConfig(t, "a")
	fixed := time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local)
	mgr := NewManager(dir, 0, logger.Discard(), WithClock(func() time.Time { return fixed }), WithoutCatalog())

	want := []string{
		"config-20260301-103000.kdl",
		"config-20260301-103000-1.kdl",
		"config-20260301-103000-2.kdl",
	}
	for _, name := range want {
		path, err := mgr.Backup(source, ReasonManual)
		if err != nil {
			t.Fatalf("Backup failed: %v", err)
		}
		if filepath.Base(path) != name {
			t.Errorf("expected %s, got %s", name, filepath.Base(path))
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 || backups[0].Name != want[2] || backups[2].Name != want[0] {
		t.Errorf("expected newest first, got %v", backups)
	}
}

func TestBackupRotation(t *testing.T) {
	source, dir := setupTestConfig(t, "a")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	mgr := NewManager(dir, 3, logger.Discard(), WithClock(stepClock(start)), WithoutCatalog())

	for i := 0; i < 5; i++ {
		if _, err := mgr.Backup(source, ReasonMerge); err != nil {
			t.Fatalf("Backup %d failed: %v", i, err)
		}
	}

	backups, _ := mgr.List()
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Name != "config-20260101-000004.kdl" || backups[2].Name != "config-20260101-000002.kdl" {
		t.Errorf("expected the newest three to survive, got %s..%s", backups[0].Name, backups[2].Name)
	}
}

func TestListIgnoresOtherFiles(t *testing.T) {
	_, dir := setupTestConfig(t, "a")
	testutil.WriteFile(t, dir, "config-20260101-000000.kdl", "x")
	testutil.WriteFile(t, dir, "config-notatime.kdl", "x")
	testutil.WriteFile(t, dir, "config-20260101-000000-x.kdl", "x")
	testutil.WriteFile(t, dir, "notes.txt", "x")

	mgr := NewManager(dir, 0, logger.Discard(), WithoutCatalog())
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 || backups[0].Size != 1 {
		t.Errorf("expected one backup, got %v", backups)
	}

	empty := NewManager(filepath.Join(dir, "missing"), 0, logger.Discard())
	if got, err := empty.List(); err != nil || len(got) != 0 {
		t.Errorf("expected empty list for missing directory, got %v %v", got, err)
	}
}

func TestRestoreBacksUpCurrentFirst(t *testing.T) {
	source, dir := setupTestConfig(t, "original")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	mgr := NewManager(dir, 0, logger.Discard(), WithClock(stepClock(start)))

	backupPath, err := mgr.Backup(source, ReasonManual)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if err := os.WriteFile(source, []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}

	previous, err := mgr.Restore(backupPath, source)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	data, _ := os.ReadFile(source)
	if string(data) != "original" {
		t.Errorf("expected restored content, got %q", data)
	}
	prev, _ := os.ReadFile(previous)
	if string(prev) != "edited" {
		t.Errorf("expected pre-restore backup of edited content, got %q", prev)
	}

	backups, _ := mgr.List()
	if len(backups) != 2 || backups[0].Reason != ReasonRestore || backups[1].Reason != ReasonManual {
		t.Errorf("expected catalog reasons restore then manual, got %+v", backups)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	source, dir := setupTestConfig(t, "original")
	mgr := NewManager(dir, 0, logger.Discard(), WithoutCatalog())
	if _, err := mgr.Restore(filepath.Join(dir, "config-20200101-000000.kdl"), source); err == nil {
		t.Fatal("expected error for missing backup")
	}
	data, _ := os.ReadFile(source)
	if string(data) != "original" {
		t.Error("expected target untouched")
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager("/b", 0, logger.Discard(), WithoutCatalog())
	if got := mgr.Resolve("config-20260101-000000.kdl"); got != filepath.Join("/b", "config-20260101-000000.kdl") {
		t.Errorf("unexpected %s", got)
	}
	if got := mgr.Resolve("/tmp/x.kdl"); got != "/tmp/x.kdl" {
		t.Errorf("unexpected %s", got)
	}
}
