package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/migration"
)

// Record is one catalog row
type Record struct {
	ID        string
	FileName  string
	Source    string
	Reason    Reason
	SHA256    string
	Size      int64
	CreatedAt time.Time
	Note      string
}

// Catalog indexes backups in a sqlite database next to them
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens or creates the catalog at path and migrates it
func OpenCatalog(path string, l *log.Logger) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	runner := migration.NewRunner(db, migration.Catalog(), l)
	if _, err := runner.Apply(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) Insert(ctx context.Context, r Record) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO backups (id, file_name, source_path, reason, sha256, size_bytes, created_at, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_name) DO UPDATE SET
			id = excluded.id,
			source_path = excluded.source_path,
			reason = excluded.reason,
			sha256 = excluded.sha256,
			size_bytes = excluded.size_bytes,
			created_at = excluded.created_at,
			note = excluded.note`,
		r.ID, r.FileName, r.Source, string(r.Reason), r.SHA256, r.Size, r.CreatedAt.Format(time.RFC3339), r.Note)
	if err != nil {
		return fmt.Errorf("failed to insert backup record: %w", err)
	}
	return nil
}

// ByFileName returns every record keyed by backup file name
func (c *Catalog) ByFileName(ctx context.Context) (map[string]Record, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, file_name, source_path, reason, sha256, size_bytes, created_at, note
		FROM backups`)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Record)
	for rows.Next() {
		var r Record
		var reason, created string
		if err := rows.Scan(&r.ID, &r.FileName, &r.Source, &reason, &r.SHA256, &r.Size, &created, &r.Note); err != nil {
			return nil, fmt.Errorf("failed to scan backup record: %w", err)
		}
		r.Reason = Reason(reason)
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out[r.FileName] = r
	}
	return out, rows.Err()
}

func (c *Catalog) Delete(ctx context.Context, fileNames ...string) error {
	if len(fileNames) == 0 {
		return nil
	}
	args := make([]any, len(fileNames))
	for i, n := range fileNames {
		args[i] = n
	}
	query := "DELETE FROM backups WHERE file_name IN (?" + strings.Repeat(", ?", len(fileNames)-1) + ")"
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete backup records: %w", err)
	}
	return nil
}
