package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/FrozenTear/Nirify-sub003/internal/logger"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, content := range m {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return n == 1
}

func TestCurrentVersion(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), files(map[string]string{"001_test.sql": "CREATE TABLE test (id INTEGER);"}), logger.Discard())

	version, err := runner.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(ctx, 5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, _ = runner.CurrentVersion(ctx)
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestMigrationsSorted(t *testing.T) {
	runner := NewRunner(setupTestDB(t), files(map[string]string{
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "ignored",
	}), logger.Discard())

	ms, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	want := []string{"init", "update", "another"}
	if len(ms) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(ms))
	}
	for i, name := range want {
		if ms[i].Version != i+1 || ms[i].Name != name {
			t.Errorf("migration %d: expected %d %q, got %d %q", i, i+1, name, ms[i].Version, ms[i].Name)
		}
	}
}

func TestApplyIncrementalAndNoOp(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	fsys := files(map[string]string{"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);"})
	runner := NewRunner(db, fsys, logger.Discard())

	n, err := runner.Apply(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 migration applied, got %d (%v)", n, err)
	}

	fsys["002_posts.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);")}
	n, err = runner.Apply(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 more migration applied, got %d (%v)", n, err)
	}
	if !tableExists(t, db, "posts") {
		t.Error("posts table was not created")
	}

	n, err = runner.Apply(ctx)
	if err != nil || n != 0 {
		t.Errorf("expected no-op, got %d (%v)", n, err)
	}
	if v, _ := runner.CurrentVersion(ctx); v != 2 {
		t.Errorf("expected version 2, got %d", v)
	}
}

func TestApplyRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_init.sql": `
			CREATE TABLE users (id INTEGER PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), logger.Discard())

	if _, err := runner.Apply(ctx); err == nil {
		t.Fatal("Apply should have failed with invalid SQL")
	}
	if v, _ := runner.CurrentVersion(ctx); v != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", v)
	}
	if tableExists(t, db, "users") {
		t.Error("table should not exist after failed migration")
	}
}

func TestNewerDatabaseIsRejected(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), files(map[string]string{"001_init.sql": "CREATE TABLE users (id INTEGER);"}), logger.Discard())
	if err := runner.SetVersion(ctx, 10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.Validate(ctx); err == nil {
		t.Error("Validate should fail for a newer database")
	}
	if _, err := runner.Apply(ctx); err == nil {
		t.Error("Apply should fail for a newer database")
	}
}

func TestInvalidFilenames(t *testing.T) {
	tests := map[string]struct {
		files map[string]string
		want  string
	}{
		"no separator": {map[string]string{"001init.sql": "SELECT 1;"}, "invalid migration filename"},
		"zero version": {map[string]string{"000_init.sql": "SELECT 1;"}, "version must be at least 1"},
		"duplicate": {
			map[string]string{"001_init.sql": "SELECT 1;", "001_other.sql": "SELECT 1;"},
			"duplicate migration version",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), files(tt.files), logger.Discard())
			_, err := runner.Migrations()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCatalogMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, Catalog(), logger.Discard())

	n, err := runner.Apply(ctx)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	latest, _ := runner.LatestVersion()
	if n != latest {
		t.Errorf("expected %d migrations applied, got %d", latest, n)
	}
	if !tableExists(t, db, "backups") {
		t.Error("backups table was not created")
	}
}
