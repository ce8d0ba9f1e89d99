// Package store persists saved queries as JSON documents on disk. Each
// saved query keeps both the builder state and the SQL rendered from it, so
// reopening one restores the full editing session.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CharlieGitDB/database-studio/querybuilder"
)

// ErrNotFound is returned when no saved query exists for an ID.
var ErrNotFound = errors.New("saved query not found")

// SavedQuery is one persisted query: the builder state plus the SQL it
// rendered to at save time.
type SavedQuery struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Connection  string             `json:"connection,omitempty"`
	Dialect     string             `json:"dialect"`
	State       querybuilder.State `json:"state"`
	SQL         string             `json:"sql"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// FileStore keeps saved queries as one JSON file per query under a
// directory. Writes go through a temp file and rename so a crash cannot
// leave a half-written document behind.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// List returns all saved queries, newest first.
func (s *FileStore) List() ([]SavedQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	queries := []SavedQuery{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		q, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		queries = append(queries, *q)
	}
	sort.Slice(queries, func(i, j int) bool {
		return queries[i].UpdatedAt.After(queries[j].UpdatedAt)
	})
	return queries, nil
}

// Get returns the saved query with the given ID.
func (s *FileStore) Get(id string) (*SavedQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.path(id))
}

// Create persists a new saved query and assigns it an ID and timestamps.
func (s *FileStore) Create(q SavedQuery) (*SavedQuery, error) {
	if q.Name == "" {
		return nil, errors.New("saved query name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = uuid.NewString()
	q.CreatedAt = s.now().UTC()
	q.UpdatedAt = q.CreatedAt
	if err := s.write(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Update overwrites an existing saved query, preserving its creation time.
func (s *FileStore) Update(id string, q SavedQuery) (*SavedQuery, error) {
	if q.Name == "" {
		return nil, errors.New("saved query name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(s.path(id))
	if err != nil {
		return nil, err
	}

	q.ID = existing.ID
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = s.now().UTC()
	if err := s.write(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Delete removes a saved query.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func (s *FileStore) path(id string) string {
	// IDs are UUIDs we minted; anything else is rejected before it can
	// address a path outside the store directory.
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}

func (s *FileStore) read(path string) (*SavedQuery, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSuffix(filepath.Base(path), ".json"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved query: %w", err)
	}

	var q SavedQuery
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to decode saved query %s: %w", filepath.Base(path), err)
	}
	return &q, nil
}

func (s *FileStore) write(q *SavedQuery) error {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode saved query: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write saved query: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(q.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to persist saved query: %w", err)
	}
	return nil
}
