// Package redis wraps go-redis behind the key-value surface the explorer
// needs: key scanning, type/TTL inspection, and value retrieval.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/logger"
)

const pingTimeout = 5 * time.Second

// Client holds an open Redis connection.
type Client struct {
	client *redis.Client
	config *config.ConnectionConfig
	logger logger.Logger
}

// NewClient connects to Redis and verifies the connection with a PING.
func NewClient(cfg *config.ConnectionConfig, log logger.Logger) (*Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.RedisDB,
	}
	if cfg.MaxConns > 0 {
		opts.PoolSize = cfg.MaxConns
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("db", cfg.RedisDB).
		Msg("Connected to Redis")

	return &Client{client: client, config: cfg, logger: log}, nil
}

// Raw exposes the underlying go-redis client.
func (c *Client) Raw() *redis.Client {
	return c.client
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
