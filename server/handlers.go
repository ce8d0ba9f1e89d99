package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CharlieGitDB/database-studio/database"
	"github.com/CharlieGitDB/database-studio/explorer"
	"github.com/CharlieGitDB/database-studio/querybuilder"
	"github.com/CharlieGitDB/database-studio/store"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{"data": data})
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]any{"error": errorBody{Code: code, Message: message}})
}

func failFromErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, database.ErrUnknownConnection), errors.Is(err, store.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// clampLimit bounds a requested page size to the configured result cap.
func (s *Server) clampLimit(limit int) int {
	max := s.cfg.Server.MaxResultRows
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}

type connectionInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) listConnections(c echo.Context) error {
	infos := []connectionInfo{}
	for _, name := range s.conns.Names() {
		cfg, ok := s.conns.Config(name)
		if !ok {
			continue
		}
		infos = append(infos, connectionInfo{Name: cfg.Name, Type: cfg.Type})
	}
	return respond(c, http.StatusOK, infos)
}

func (s *Server) connectionHealth(c echo.Context) error {
	conn, err := s.conns.Get(c.Param("name"))
	if err != nil {
		return failFromErr(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := conn.Health(ctx); err != nil {
		return respond(c, http.StatusOK, map[string]any{"healthy": false, "error": err.Error()})
	}
	return respond(c, http.StatusOK, map[string]any{"healthy": true})
}

func (s *Server) treeRoots(c echo.Context) error {
	return respond(c, http.StatusOK, s.tree.Roots())
}

func (s *Server) treeChildren(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "query parameter id is required")
	}

	nodes, err := s.tree.Children(c.Request().Context(), id)
	if err != nil {
		return failFromErr(c, err)
	}
	return respond(c, http.StatusOK, nodes)
}

type generateRequest struct {
	State   querybuilder.State `json:"state"`
	Dialect string             `json:"dialect"`
}

func (s *Server) generateQuery(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	dialect, err := querybuilder.ParseDialect(req.Dialect)
	if err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	}
	return respond(c, http.StatusOK, map[string]string{
		"sql": querybuilder.GenerateSQL(&req.State, dialect),
	})
}

type validateRequest struct {
	State querybuilder.State `json:"state"`
}

func (s *Server) validateQuery(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	return respond(c, http.StatusOK, querybuilder.Validate(&req.State))
}

type parseRequest struct {
	SQL string `json:"sql"`
}

func (s *Server) parseQuery(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	state := querybuilder.ParseSQL(req.SQL)
	if state == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return respond(c, http.StatusOK, state)
}

type executeRequest struct {
	Connection string `json:"connection"`
	SQL        string `json:"sql"`
	MaxRows    int    `json:"maxRows"`
}

func (s *Server) executeQuery(c echo.Context) error {
	var req executeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if req.SQL == "" {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "sql is required")
	}

	conn, err := s.conns.Get(req.Connection)
	if err != nil {
		return failFromErr(c, err)
	}
	if !conn.IsSQL() {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "connection does not speak SQL")
	}

	rows, err := conn.SQL.Query(c.Request().Context(), req.SQL)
	if err != nil {
		return fail(c, http.StatusBadRequest, "QUERY_FAILED", err.Error())
	}
	defer rows.Close()

	page, err := explorer.ScanRows(rows, s.clampLimit(req.MaxRows))
	if err != nil {
		return failFromErr(c, err)
	}
	return respond(c, http.StatusOK, page)
}

type browseParams struct {
	Connection string `query:"connection"`
	Schema     string `query:"schema"`
	Table      string `query:"table"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

func (s *Server) browseData(c echo.Context) error {
	var params browseParams
	if err := c.Bind(&params); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid query parameters")
	}
	if params.Connection == "" || params.Table == "" {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "connection and table are required")
	}

	conn, err := s.conns.Get(params.Connection)
	if err != nil {
		return failFromErr(c, err)
	}
	limit := s.clampLimit(params.Limit)
	ctx := c.Request().Context()

	switch {
	case conn.IsSQL():
		page, err := explorer.NewSQLIntrospector(conn.SQL).
			Browse(ctx, params.Schema, params.Table, limit, params.Offset)
		if err != nil {
			return failFromErr(c, err)
		}
		return respond(c, http.StatusOK, page)
	case conn.Mongo != nil:
		docs, err := explorer.NewMongoIntrospector(conn.Mongo.Database()).
			Documents(ctx, params.Table, limit, params.Offset)
		if err != nil {
			return failFromErr(c, err)
		}
		return respond(c, http.StatusOK, docs)
	case conn.Redis != nil:
		value, err := explorer.NewRedisBrowser(conn.Redis.Raw()).Value(ctx, params.Table)
		if err != nil {
			return failFromErr(c, err)
		}
		return respond(c, http.StatusOK, map[string]any{"key": params.Table, "value": value})
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL", "connection has no backing client")
	}
}

type updateDataRequest struct {
	Connection string         `json:"connection"`
	Schema     string         `json:"schema"`
	Table      string         `json:"table"`
	Key        map[string]any `json:"key"`
	Changes    map[string]any `json:"changes"`
}

func (s *Server) updateData(c echo.Context) error {
	var req updateDataRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	conn, err := s.conns.Get(req.Connection)
	if err != nil {
		return failFromErr(c, err)
	}
	if !conn.IsSQL() {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "row updates require a SQL connection")
	}

	affected, err := explorer.NewSQLIntrospector(conn.SQL).
		UpdateRow(c.Request().Context(), req.Schema, req.Table, req.Key, req.Changes)
	if err != nil {
		return fail(c, http.StatusBadRequest, "UPDATE_FAILED", err.Error())
	}
	return respond(c, http.StatusOK, map[string]any{"affected": affected})
}

type deleteDataRequest struct {
	Connection string         `json:"connection"`
	Schema     string         `json:"schema"`
	Table      string         `json:"table"`
	Key        map[string]any `json:"key"`
	DocumentID any            `json:"documentId"`
	RedisKey   string         `json:"redisKey"`
}

func (s *Server) deleteData(c echo.Context) error {
	var req deleteDataRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	conn, err := s.conns.Get(req.Connection)
	if err != nil {
		return failFromErr(c, err)
	}
	ctx := c.Request().Context()

	var deleted int64
	switch {
	case conn.IsSQL():
		deleted, err = explorer.NewSQLIntrospector(conn.SQL).
			DeleteRow(ctx, req.Schema, req.Table, req.Key)
	case conn.Mongo != nil:
		deleted, err = explorer.NewMongoIntrospector(conn.Mongo.Database()).
			DeleteDocument(ctx, req.Table, req.DocumentID)
	case conn.Redis != nil:
		deleted, err = explorer.NewRedisBrowser(conn.Redis.Raw()).Delete(ctx, req.RedisKey)
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL", "connection has no backing client")
	}
	if err != nil {
		return fail(c, http.StatusBadRequest, "DELETE_FAILED", err.Error())
	}
	return respond(c, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) listSaved(c echo.Context) error {
	queries, err := s.queries.List()
	if err != nil {
		return failFromErr(c, err)
	}
	return respond(c, http.StatusOK, queries)
}

func (s *Server) createSaved(c echo.Context) error {
	var q store.SavedQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	created, err := s.queries.Create(q)
	if err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	}
	return respond(c, http.StatusCreated, created)
}

func (s *Server) getSaved(c echo.Context) error {
	q, err := s.queries.Get(c.Param("id"))
	if err != nil {
		return failFromErr(c, err)
	}
	return respond(c, http.StatusOK, q)
}

func (s *Server) updateSaved(c echo.Context) error {
	var q store.SavedQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	updated, err := s.queries.Update(c.Param("id"), q)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return failFromErr(c, err)
		}
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	}
	return respond(c, http.StatusOK, updated)
}

func (s *Server) deleteSaved(c echo.Context) error {
	if err := s.queries.Delete(c.Param("id")); err != nil {
		return failFromErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
