package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const defaultPostgresDSN = "postgres://localhost/riverline?sslmode=disable"

var postgresQueries = sqlQueries{
	create: `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	get: `SELECT value::text FROM kv WHERE key = $1`,
	put: `INSERT INTO kv (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	delete: `DELETE FROM kv WHERE key = $1`,
	keys:   `SELECT key FROM kv ORDER BY key`,
}

// NewPostgres connects with the pgx driver and ensures the kv table exists.
// Values must be valid JSON since they land in a JSONB column.
func NewPostgres(ctx context.Context, dsn string) (KV, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}
	return newSQLKV(ctx, db, postgresQueries)
}
