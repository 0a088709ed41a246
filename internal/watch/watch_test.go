package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

func setupWatcher(t *testing.T, ignore func(string, []byte) bool) (storage.Paths, <-chan Change) {
	t.Helper()
	root := t.TempDir()
	paths := storage.Paths{HostConfig: filepath.Join(root, "config.kdl"), Dir: filepath.Join(root, "nirify")}
	storage.EnsureDirs(paths, logger.Discard())

	changes := make(chan Change, 8)
	w := New(paths, func(c Change) { changes <- c }, Options{Debounce: 50 * time.Millisecond, Ignore: ignore, Log: logger.Discard()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// let the watches register
	time.Sleep(50 * time.Millisecond)
	return paths, changes
}

func TestWatcherReportsEdits(t *testing.T) {
	paths, changes := setupWatcher(t, nil)
	path := paths.CategoryFile(models.CategoryKeyboard)

	// several writes settle into one change
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("input {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-changes:
		if c.Category != models.CategoryKeyboard || c.Path != path || string(c.Data) != "input {}\n" {
			t.Errorf("unexpected change %+v", c)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change")
	}

	select {
	case c := <-changes:
		t.Errorf("expected writes to be debounced, got extra change %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOwnWritesAndOtherFiles(t *testing.T) {
	own := "cursor {}\n"
	paths, changes := setupWatcher(t, func(_ string, data []byte) bool { return string(data) == own })

	if err := os.WriteFile(paths.CategoryFile(models.CategoryCursor), []byte(own), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(paths.Dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.MainFile(), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		t.Errorf("expected no change, got %+v", c)
	case <-time.After(400 * time.Millisecond):
	}
}
