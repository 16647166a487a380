package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var sqliteQueries = sqlQueries{
	create: `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	get: `SELECT value FROM kv WHERE key = ?`,
	put: `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	delete: `DELETE FROM kv WHERE key = ?`,
	keys:   `SELECT key FROM kv ORDER BY key`,
}

// NewSQLite opens a sqlite file at path and ensures the kv table exists.
func NewSQLite(ctx context.Context, path string) (KV, error) {
	if path == "" {
		path = "riverline.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("store: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// Single local writer; one connection avoids SQLITE_BUSY between pool members.
	db.SetMaxOpenConns(1)
	return newSQLKV(ctx, db, sqliteQueries)
}
