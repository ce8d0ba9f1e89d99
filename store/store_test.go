package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharlieGitDB/database-studio/querybuilder"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func sampleQuery(name string) SavedQuery {
	return SavedQuery{
		Name:    name,
		Dialect: "postgresql",
		State:   *querybuilder.NewEmptyState("users"),
		SQL:     "SELECT *\nFROM \"users\";",
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleQuery("active users"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active users", got.Name)
	assert.Equal(t, "users", got.State.Table)
}

func TestCreateRequiresName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(SavedQuery{Dialect: "mysql"})
	assert.ErrorContains(t, err, "name is required")
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := s.Create(sampleQuery("first"))
	require.NoError(t, err)
	second, err := s.Create(sampleQuery("second"))
	require.NoError(t, err)

	queries, err := s.List()
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, second.ID, queries[0].ID)
	assert.Equal(t, first.ID, queries[1].ID)
}

func TestListEmptyStore(t *testing.T) {
	s := newTestStore(t)

	queries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestUpdatePreservesCreationTime(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleQuery("original"))
	require.NoError(t, err)

	changed := sampleQuery("renamed")
	updated, err := s.Update(created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "renamed", updated.Name)
}

func TestUpdateMissingQuery(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update("no-such-id", sampleQuery("x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleQuery("doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.ID))
	_, err = s.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(created.ID), ErrNotFound)
}
