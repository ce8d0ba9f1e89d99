// Package types contains the core database interface definitions shared by
// the engine adapters. They live apart from the database package to avoid
// import cycles and to keep them easy to mock in tests.
package types

import (
	"context"
	"database/sql"
	"errors"
)

// Vendor identifies a supported database engine.
type Vendor = string

const (
	MySQL      Vendor = "mysql"
	PostgreSQL Vendor = "postgresql"
	MongoDB    Vendor = "mongodb"
	Redis      Vendor = "redis"
)

// SQLVendors lists the engines that speak SQL and satisfy Interface.
func SQLVendors() []Vendor {
	return []Vendor{MySQL, PostgreSQL}
}

// Row represents a single result set row with basic scanning behaviour.
type Row interface {
	Scan(dest ...any) error
	Err() error
}

type sqlRowAdapter struct {
	row *sql.Row
}

// NewRowFromSQL wraps the provided *sql.Row in a Row. Returns nil for a nil
// input.
func NewRowFromSQL(row *sql.Row) Row {
	if row == nil {
		return nil
	}
	return &sqlRowAdapter{row: row}
}

func (r *sqlRowAdapter) Scan(dest ...any) error {
	if r == nil || r.row == nil {
		return errors.New("sqlRowAdapter: underlying sql.Row is nil")
	}
	return r.row.Scan(dest...)
}

func (r *sqlRowAdapter) Err() error {
	if r == nil || r.row == nil {
		return errors.New("sqlRowAdapter: underlying sql.Row is nil")
	}
	return r.row.Err()
}

// Tx defines the interface for database transactions.
type Tx interface {
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Commit() error
	Rollback() error
}

// Interface defines the operations every SQL engine adapter supports. The
// document and key-value engines expose their own narrower clients instead,
// since their access patterns do not fit a rows-and-columns contract.
type Interface interface {
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	Begin(ctx context.Context) (Tx, error)

	Health(ctx context.Context) error
	Stats() (map[string]any, error)

	Close() error

	DatabaseType() string
}
