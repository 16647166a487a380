package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqlQueries holds the dialect specific statements of a kv table.
type sqlQueries struct {
	create string
	get    string
	put    string
	delete string
	keys   string
}

// sqlKV implements KV over a single kv(key, value, updated_at) table.
type sqlKV struct {
	db *sql.DB
	q  sqlQueries
}

func newSQLKV(ctx context.Context, db *sql.DB, q sqlQueries) (*sqlKV, error) {
	if _, err := db.ExecContext(ctx, q.create); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create kv table: %w", err)
	}
	return &sqlKV{db: db, q: q}, nil
}

func (s *sqlKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: select %s: %w", key, err)
	}
	return value, nil
}

func (s *sqlKV) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.q.put, key, string(value)); err != nil {
		return fmt.Errorf("store: upsert %s: %w", key, err)
	}
	return nil
}

// PutBatch writes all values in one transaction.
func (s *sqlKV) PutBatch(ctx context.Context, values map[string][]byte) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, key := range sortedKeys(values) {
		if _, err := tx.ExecContext(ctx, s.q.put, key, string(values[key])); err != nil {
			return fmt.Errorf("store: upsert %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (s *sqlKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.delete, key); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

func (s *sqlKV) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q.keys)
	if err != nil {
		return nil, fmt.Errorf("store: select keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("store: scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate keys: %w", err)
	}
	return keys, nil
}

func (s *sqlKV) Close() error {
	return s.db.Close()
}
