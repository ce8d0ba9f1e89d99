// Package mongodb wraps the official MongoDB driver behind the narrow
// client surface the explorer needs: collection listing, sampling, index
// inspection, and health checks.
package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/logger"
)

const connectTimeout = 10 * time.Second

// Client holds an open MongoDB connection scoped to one database.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.ConnectionConfig
	logger   logger.Logger
}

func buildURI(cfg *config.ConnectionConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/",
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String()
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(cfg *config.ConnectionConfig, log logger.Logger) (*Client, error) {
	opts := options.Client().ApplyURI(buildURI(cfg))
	if cfg.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}
	if cfg.ConnMaxIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.ConnMaxIdleTime)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if closeErr := client.Disconnect(ctx); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to disconnect MongoDB client after ping failure")
		}
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Connected to MongoDB")

	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
		logger:   log,
	}, nil
}

// Database returns the driver handle for the configured database.
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Health pings the primary.
func (c *Client) Health(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
