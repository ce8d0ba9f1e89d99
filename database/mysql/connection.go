// Package mysql implements the SQL engine interface for MySQL using the
// go-sql-driver connector through database/sql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/database/types"
	"github.com/CharlieGitDB/database-studio/logger"
)

const pingTimeout = 10 * time.Second

// Connection implements types.Interface for MySQL.
type Connection struct {
	db     *sql.DB
	config *config.ConnectionConfig
	logger logger.Logger
}

var _ types.Interface = (*Connection)(nil)

func buildDriverConfig(cfg *config.ConnectionConfig) (*mysqldriver.Config, error) {
	if cfg.ConnectionString != "" {
		return mysqldriver.ParseDSN(cfg.ConnectionString)
	}
	dc := mysqldriver.NewConfig()
	dc.User = cfg.Username
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dc.DBName = cfg.Database
	dc.ParseTime = true
	return dc, nil
}

// NewConnection opens and pings a MySQL connection.
func NewConnection(cfg *config.ConnectionConfig, log logger.Logger) (types.Interface, error) {
	dc, err := buildDriverConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MySQL config: %w", err)
	}

	connector, err := mysqldriver.NewConnector(dc)
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL connector: %w", err)
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close MySQL connection after ping failure")
		}
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Connected to MySQL database")

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
	return types.MySQL
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
