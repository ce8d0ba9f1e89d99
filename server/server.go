// Package server exposes the workbench over HTTP using the Echo framework:
// connection listing, lazy tree expansion, query building, execution, data
// browsing, and saved-query management.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/database"
	"github.com/CharlieGitDB/database-studio/explorer"
	"github.com/CharlieGitDB/database-studio/logger"
	"github.com/CharlieGitDB/database-studio/store"
)

// Connections is the slice of the connection pool the server needs. It is
// satisfied by *database.Pool.
type Connections interface {
	Names() []string
	Get(name string) (*database.Conn, error)
	Config(name string) (config.ConnectionConfig, bool)
}

// Server wires the HTTP surface over the connection pool, explorer tree, and
// saved-query store.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	log     logger.Logger
	conns   Connections
	tree    *explorer.Tree
	queries *store.FileStore
}

// New creates the server and registers all routes. It does not start
// listening; call Start for that.
func New(cfg *config.Config, conns Connections, queries *store.FileStore, log logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	s := &Server{
		echo:    e,
		cfg:     cfg,
		log:     log,
		conns:   conns,
		tree:    explorer.NewTree(conns),
		queries: queries,
	}

	e.Use(requestLogger(log))
	e.Use(recoverPanics(log))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	api.GET("/connections", s.listConnections)
	api.GET("/connections/:name/health", s.connectionHealth)

	api.GET("/tree", s.treeRoots)
	api.GET("/tree/children", s.treeChildren)

	api.POST("/query/generate", s.generateQuery)
	api.POST("/query/validate", s.validateQuery)
	api.POST("/query/parse", s.parseQuery)
	api.POST("/query/execute", s.executeQuery)

	api.GET("/data", s.browseData)
	api.POST("/data/update", s.updateData)
	api.POST("/data/delete", s.deleteData)

	api.GET("/saved", s.listSaved)
	api.POST("/saved", s.createSaved)
	api.GET("/saved/:id", s.getSaved)
	api.PUT("/saved/:id", s.updateSaved)
	api.DELETE("/saved/:id", s.deleteSaved)

	s.echo.GET("/health", s.healthCheck)
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down HTTP server")
		return s.echo.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
