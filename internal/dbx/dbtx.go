// Package dbx holds the tiny DB abstraction shared by repositories: a
// minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
//
// Every mutation in this codebase is a single guarded statement, so repos
// normally run directly against *sql.DB; the interface keeps them usable
// inside a transaction should a caller ever need one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
