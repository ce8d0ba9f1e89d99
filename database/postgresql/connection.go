// Package postgresql implements the SQL engine interface for PostgreSQL
// using the pgx driver through database/sql.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/database/types"
	"github.com/CharlieGitDB/database-studio/logger"
)

const pingTimeout = 10 * time.Second

// Connection implements types.Interface for PostgreSQL.
type Connection struct {
	db     *sql.DB
	config *config.ConnectionConfig
	logger logger.Logger
}

var _ types.Interface = (*Connection)(nil)

// quoteDSN quotes a DSN value according to libpq rules: empty values become
// doubled single quotes, and values containing characters outside
// [A-Za-z0-9._-] are escaped and wrapped in single quotes.
func quoteDSN(value string) string {
	if value == "" {
		return "''"
	}

	needsQuoting := false
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') && r != '.' && r != '_' && r != '-' {
			needsQuoting = true
			break
		}
	}
	if !needsQuoting {
		return value
	}

	escaped := strings.ReplaceAll(value, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")
	return "'" + escaped + "'"
}

func buildDSN(cfg *config.ConnectionConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	parts := []string{
		fmt.Sprintf("host=%s", quoteDSN(cfg.Host)),
		fmt.Sprintf("port=%d", cfg.Port),
		fmt.Sprintf("user=%s", quoteDSN(cfg.Username)),
		fmt.Sprintf("password=%s", quoteDSN(cfg.Password)),
		fmt.Sprintf("dbname=%s", quoteDSN(cfg.Database)),
	}
	if cfg.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", cfg.SSLMode))
	}
	return strings.Join(parts, " ")
}

// NewConnection opens and pings a PostgreSQL connection.
func NewConnection(cfg *config.ConnectionConfig, log logger.Logger) (types.Interface, error) {
	pgxConfig, err := pgx.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	db := stdlib.OpenDB(*pgxConfig)

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close PostgreSQL connection after ping failure")
		}
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Connected to PostgreSQL database")

	return &Connection{db: db, config: cfg, logger: log}, nil
}

// Query executes a query that returns rows
func (c *Connection) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row
func (c *Connection) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	return types.NewRowFromSQL(c.db.QueryRowContext(ctx, query, args...))
}

// Exec executes a statement without returning rows
func (c *Connection) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

// Begin starts a transaction
func (c *Connection) Begin(ctx context.Context) (types.Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx}, nil
}

// Health pings the database
func (c *Connection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Stats reports connection pool statistics.
func (c *Connection) Stats() (map[string]any, error) {
	s := c.db.Stats()
	return map[string]any{
		"open_connections": s.OpenConnections,
		"in_use":           s.InUse,
		"idle":             s.Idle,
		"wait_count":       s.WaitCount,
		"wait_duration":    s.WaitDuration.String(),
	}, nil
}

// Close closes the connection pool
func (c *Connection) Close() error {
	return c.db.Close()
}

// DatabaseType returns the vendor identifier
func (c *Connection) DatabaseType() string {
	return types.PostgreSQL
}

// Transaction wraps sql.Tx to implement types.Tx
type Transaction struct {
	tx *sql.Tx
}

func (t *Transaction) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *Transaction) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	return types.NewRowFromSQL(t.tx.QueryRowContext(ctx, query, args...))
}

func (t *Transaction) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Transaction) Commit() error { return t.tx.Commit() }

func (t *Transaction) Rollback() error { return t.tx.Rollback() }
