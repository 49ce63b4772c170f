package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/appstash/appstash/internal/dbx"
	"github.com/appstash/appstash/internal/kv/migrations"
	"github.com/pressly/goose/v3"
)

// SQLiteStore is a Store backed by a single sqlite table. Enumeration
// order is rowid order, so keys enumerate in insertion order.
type SQLiteStore struct {
	db dbx.DBTX

	// owned is set when this store opened the handle itself and is
	// responsible for closing it.
	owned *sql.DB
}

// NewSQLiteStore wraps an already-open handle (either *sql.DB or
// *sql.Tx). The schema must be in place (see OpenSQLiteStore).
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens the database at dsn and applies pending schema
// migrations.
func OpenSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := NewSQLiteStore(db)
	s.owned = db
	return s, nil
}

// Close closes the database handle when this store opened it; stores
// wrapping a caller-owned handle leave closing to the caller.
func (s *SQLiteStore) Close() error {
	if s.owned == nil {
		return nil
	}
	return s.owned.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to remove kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Key(ctx context.Context, index int) (string, error) {
	if index < 0 {
		return "", ErrNotFound
	}
	var key string
	err := s.db.QueryRowContext(ctx,
		`SELECT key FROM kv ORDER BY rowid LIMIT 1 OFFSET ?`, index).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to enumerate kv at %d: %w", index, err)
	}
	return key, nil
}

func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count kv rows: %w", err)
	}
	return n, nil
}
