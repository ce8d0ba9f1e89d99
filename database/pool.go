package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/logger"
)

// ErrUnknownConnection is returned when a connection name is not configured.
var ErrUnknownConnection = errors.New("unknown connection")

// Pool lazily opens connections to configured engines and hands out the
// open ones by name. Connections are dialed on first use, mirroring a
// workbench where configured servers are only contacted once expanded.
type Pool struct {
	mu      sync.Mutex
	order   []string
	configs map[string]config.ConnectionConfig
	conns   map[string]*Conn
	log     logger.Logger
}

// NewPool creates a pool over the configured connections. Nothing is dialed
// until Get is called.
func NewPool(configs []config.ConnectionConfig, log logger.Logger) *Pool {
	p := &Pool{
		configs: make(map[string]config.ConnectionConfig, len(configs)),
		conns:   make(map[string]*Conn),
		log:     log,
	}
	for _, c := range configs {
		p.order = append(p.order, c.Name)
		p.configs[c.Name] = c
	}
	return p
}

// Names returns the configured connection names in configuration order.
func (p *Pool) Names() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// Config returns the configuration for a named connection.
func (p *Pool) Config(name string) (config.ConnectionConfig, bool) {
	cfg, ok := p.configs[name]
	return cfg, ok
}

// Get returns the open connection for name, dialing it first if needed.
func (p *Pool) Get(name string) (*Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[name]; ok {
		return conn, nil
	}
	cfg, ok := p.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConnection, name)
	}

	conn, err := Open(&cfg, p.log)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection %s: %w", name, err)
	}
	p.conns[name] = conn
	return conn, nil
}

// Close closes every open connection, keeping the first error encountered.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for name, conn := range p.conns {
		if err := conn.Close(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close connection %s: %w", name, err)
		}
		delete(p.conns, name)
	}
	return firstErr
}
