package db

import (
	"context"
	"database/sql"
)

// Querier is the slice of database/sql shared by *sql.DB and *sql.Tx.
// The preference store takes a Querier so tests can hand it either a
// real connection or a transaction they roll back afterwards.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
