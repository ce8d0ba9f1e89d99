package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/database"
	"github.com/CharlieGitDB/database-studio/database/types"
	"github.com/CharlieGitDB/database-studio/logger"
	"github.com/CharlieGitDB/database-studio/querybuilder"
	"github.com/CharlieGitDB/database-studio/store"
)

type fakeConns struct {
	configs map[string]config.ConnectionConfig
	conns   map[string]*database.Conn
	order   []string
}

func (f *fakeConns) Names() []string { return f.order }

func (f *fakeConns) Get(name string) (*database.Conn, error) {
	conn, ok := f.conns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", database.ErrUnknownConnection, name)
	}
	return conn, nil
}

func (f *fakeConns) Config(name string) (config.ConnectionConfig, bool) {
	cfg, ok := f.configs[name]
	return cfg, ok
}

// mockSQL adapts a sqlmock-backed *sql.DB to types.Interface.
type mockSQL struct {
	db *sql.DB
}

func (m *mockSQL) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return m.db.QueryContext(ctx, query, args...)
}

func (m *mockSQL) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	return types.NewRowFromSQL(m.db.QueryRowContext(ctx, query, args...))
}

func (m *mockSQL) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return m.db.ExecContext(ctx, query, args...)
}

func (m *mockSQL) Begin(ctx context.Context) (types.Tx, error) {
	return nil, errors.New("transactions not supported by mock")
}

func (m *mockSQL) Health(ctx context.Context) error { return m.db.PingContext(ctx) }

func (m *mockSQL) Stats() (map[string]any, error) { return map[string]any{}, nil }

func (m *mockSQL) Close() error { return m.db.Close() }

func (m *mockSQL) DatabaseType() string { return types.MySQL }

func testServer(t *testing.T, conns Connections) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
			MaxResultRows:   100,
		},
	}
	queries, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	if conns == nil {
		conns = &fakeConns{}
	}
	return New(cfg, conns, queries, logger.New("disabled", false))
}

func doRequest(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echoContentType, echoJSON)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSON        = "application/json"
)

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestListConnections(t *testing.T) {
	conns := &fakeConns{
		order: []string{"pg-main", "cache"},
		configs: map[string]config.ConnectionConfig{
			"pg-main": {Name: "pg-main", Type: "postgresql"},
			"cache":   {Name: "cache", Type: "redis"},
		},
	}
	s := testServer(t, conns)

	rec := doRequest(t, s, http.MethodGet, "/api/connections", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []connectionInfo
	decodeData(t, rec, &infos)
	require.Len(t, infos, 2)
	assert.Equal(t, connectionInfo{Name: "pg-main", Type: "postgresql"}, infos[0])
}

func TestTreeRootsAndMissingChildID(t *testing.T) {
	conns := &fakeConns{order: []string{"pg-main"}}
	s := testServer(t, conns)

	rec := doRequest(t, s, http.MethodGet, "/api/tree", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pg-main"`)

	rec = doRequest(t, s, http.MethodGet, "/api/tree/children", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTreeChildrenUnknownConnection(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/tree/children?id=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateQuery(t *testing.T) {
	s := testServer(t, nil)

	limit := 10
	req := generateRequest{
		Dialect: "postgresql",
		State: querybuilder.State{
			Table: "users",
			Filters: []querybuilder.FilterCondition{
				{Column: "age", Operator: querybuilder.OpGt, Value: "25"},
			},
			Limit: &limit,
		},
	}

	rec := doRequest(t, s, http.MethodPost, "/api/query/generate", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]string
	decodeData(t, rec, &result)
	assert.Equal(t, "SELECT *\nFROM \"users\"\nWHERE \"age\" > 25\nLIMIT 10;", result["sql"])
}

func TestGenerateQueryBadDialect(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query/generate",
		generateRequest{Dialect: "oracle", State: querybuilder.State{Table: "t"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateQueryReportsAllViolations(t *testing.T) {
	s := testServer(t, nil)

	limit := -1
	rec := doRequest(t, s, http.MethodPost, "/api/query/validate",
		validateRequest{State: querybuilder.State{Limit: &limit}})
	require.Equal(t, http.StatusOK, rec.Code)

	var result querybuilder.Result
	decodeData(t, rec, &result)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
}

func TestParseQuery(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query/parse",
		parseRequest{SQL: "SELECT * FROM users LIMIT 5"})
	require.Equal(t, http.StatusOK, rec.Code)

	var state querybuilder.State
	decodeData(t, rec, &state)
	assert.Equal(t, "users", state.Table)
	require.NotNil(t, state.Limit)
	assert.Equal(t, 5, *state.Limit)
}

func TestParseQueryUnparseable(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query/parse",
		parseRequest{SQL: "DROP TABLE users"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestExecuteQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	conns := &fakeConns{
		conns: map[string]*database.Conn{
			"mysql-main": {Name: "mysql-main", Type: types.MySQL, SQL: &mockSQL{db: db}},
		},
	}
	s := testServer(t, conns)

	rec := doRequest(t, s, http.MethodPost, "/api/query/execute",
		executeRequest{Connection: "mysql-main", SQL: "SELECT id FROM users"})
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	decodeData(t, rec, &page)
	assert.Equal(t, []string{"id"}, page.Columns)
	assert.Len(t, page.Rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteQueryUnknownConnection(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/query/execute",
		executeRequest{Connection: "ghost", SQL: "SELECT 1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExecuteQueryRequiresSQLConnection(t *testing.T) {
	conns := &fakeConns{
		conns: map[string]*database.Conn{
			"cache": {Name: "cache", Type: types.Redis},
		},
	}
	s := testServer(t, conns)

	rec := doRequest(t, s, http.MethodPost, "/api/query/execute",
		executeRequest{Connection: "cache", SQL: "SELECT 1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedQueryCRUD(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/saved", store.SavedQuery{
		Name:    "top users",
		Dialect: "postgresql",
		State:   *querybuilder.NewEmptyState("users"),
		SQL:     "SELECT *\nFROM \"users\";",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created store.SavedQuery
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)

	rec = doRequest(t, s, http.MethodGet, "/api/saved", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []store.SavedQuery
	decodeData(t, rec, &list)
	assert.Len(t, list, 1)

	rec = doRequest(t, s, http.MethodGet, "/api/saved/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	created.Name = "renamed"
	rec = doRequest(t, s, http.MethodPut, "/api/saved/"+created.ID, created)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated store.SavedQuery
	decodeData(t, rec, &updated)
	assert.Equal(t, "renamed", updated.Name)

	rec = doRequest(t, s, http.MethodDelete, "/api/saved/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/saved/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSavedRequiresName(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/saved", store.SavedQuery{Dialect: "mysql"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
