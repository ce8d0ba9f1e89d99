package database

import (
	"context"
	"fmt"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/database/mongodb"
	"github.com/CharlieGitDB/database-studio/database/mysql"
	"github.com/CharlieGitDB/database-studio/database/postgresql"
	redisclient "github.com/CharlieGitDB/database-studio/database/redis"
	"github.com/CharlieGitDB/database-studio/database/types"
	"github.com/CharlieGitDB/database-studio/logger"
)

// Conn is one open connection to a configured engine. Exactly one of SQL,
// Mongo, and Redis is non-nil, selected by Type.
type Conn struct {
	Name  string
	Type  types.Vendor
	SQL   types.Interface
	Mongo *mongodb.Client
	Redis *redisclient.Client
}

// Open dials the engine described by cfg. The concrete adapter is selected
// by cfg.Type; an unsupported type is an error.
func Open(cfg *config.ConnectionConfig, log logger.Logger) (*Conn, error) {
	conn := &Conn{Name: cfg.Name, Type: cfg.Type}
	var err error

	switch cfg.Type {
	case types.PostgreSQL:
		conn.SQL, err = postgresql.NewConnection(cfg, log)
	case types.MySQL:
		conn.SQL, err = mysql.NewConnection(cfg, log)
	case types.MongoDB:
		conn.Mongo, err = mongodb.NewClient(cfg, log)
	case types.Redis:
		conn.Redis, err = redisclient.NewClient(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported: mysql, postgresql, mongodb, redis)", cfg.Type)
	}

	if err != nil {
		return nil, err
	}
	return conn, nil
}

// IsSQL reports whether the connection speaks SQL.
func (c *Conn) IsSQL() bool {
	return c.SQL != nil
}

// Health checks the underlying engine connection.
func (c *Conn) Health(ctx context.Context) error {
	switch {
	case c.SQL != nil:
		return c.SQL.Health(ctx)
	case c.Mongo != nil:
		return c.Mongo.Health(ctx)
	case c.Redis != nil:
		return c.Redis.Health(ctx)
	default:
		return fmt.Errorf("connection %s has no backing client", c.Name)
	}
}

// Close releases the underlying engine connection.
func (c *Conn) Close(ctx context.Context) error {
	switch {
	case c.SQL != nil:
		return c.SQL.Close()
	case c.Mongo != nil:
		return c.Mongo.Close(ctx)
	case c.Redis != nil:
		return c.Redis.Close()
	default:
		return nil
	}
}
