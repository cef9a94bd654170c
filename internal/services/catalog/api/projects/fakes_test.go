package projects

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/lastro/internal/services/catalog/storage"
)

type fakeStore struct {
	mu        sync.Mutex
	projects  map[int64]storage.Project
	err       error
	lastQuery storage.SampleQuery
	sampled   bool
}

func newFakeStore(projects ...storage.Project) *fakeStore {
	s := &fakeStore{projects: make(map[int64]storage.Project)}
	for _, project := range projects {
		s.projects[project.ID] = project
	}
	return s
}

func (s *fakeStore) GetProject(_ context.Context, id int64) (storage.Project, error) {
	if s.err != nil {
		return storage.Project{}, s.err
	}
	project, ok := s.projects[id]
	if !ok {
		return storage.Project{}, storage.ErrNotFound
	}
	return project, nil
}

func (s *fakeStore) ListProjects(context.Context) ([]storage.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]storage.Project, 0, len(s.projects))
	for _, project := range s.projects {
		out = append(out, project)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SampleProjects returns the first Count projects by id.
func (s *fakeStore) SampleProjects(ctx context.Context, query storage.SampleQuery) ([]storage.Project, error) {
	s.mu.Lock()
	s.lastQuery = query
	s.sampled = true
	s.mu.Unlock()
	all, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return all[:min(query.Count, len(all))], nil
}

func (s *fakeStore) sampleState() (storage.SampleQuery, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery, s.sampled
}
