// Package dbx provides a tiny DB abstraction shared by sql-backed
// stores: a minimal interface (DBTX) implemented by both *sql.DB and
// *sql.Tx, so store code runs unchanged inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the sqlite store.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
