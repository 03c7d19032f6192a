// Package memstore is the in-memory reference implementation of
// tilestatus.Store, used by every test in this repository and by standalone
// operation where the real ORM-backed store is not wired in.
package memstore

import (
	"context"

	"github.com/srand/tilecore/pkg/tilestatus"
	"github.com/srand/tilecore/pkg/utils"
)

// Store is a concurrency-safe, per-project map of RelativePath -> Row.
type Store struct {
	mu    utils.RWMutex
	rows  map[string]map[string]tilestatus.Row
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		mu:   utils.NewRWMutex(),
		rows: make(map[string]map[string]tilestatus.Row),
	}
}

func (s *Store) List(ctx context.Context, projectID string) ([]tilestatus.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project := s.rows[projectID]
	out := make([]tilestatus.Row, 0, len(project))
	for _, row := range project {
		out = append(out, row)
	}
	return out, nil
}

func (s *Store) InsertBatch(ctx context.Context, projectID string, rows []tilestatus.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectLocked(projectID)
	for _, row := range rows {
		project[row.RelativePath] = row
	}
	return nil
}

func (s *Store) UpdateBatch(ctx context.Context, projectID string, rows []tilestatus.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectLocked(projectID)
	for _, row := range rows {
		project[row.RelativePath] = row
	}
	return nil
}

func (s *Store) DeleteBatch(ctx context.Context, projectID string, relativePaths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.projectLocked(projectID)
	for _, path := range relativePaths {
		delete(project, path)
	}
	return nil
}

// projectLocked returns (creating if necessary) the row map for projectID.
// Callers must hold s.mu.
func (s *Store) projectLocked(projectID string) map[string]tilestatus.Row {
	project, ok := s.rows[projectID]
	if !ok {
		project = make(map[string]tilestatus.Row)
		s.rows[projectID] = project
	}
	return project
}
