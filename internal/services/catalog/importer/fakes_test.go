package importer

import (
	"context"
	"errors"
	"sync"

	"github.com/louisbranch/lastro/internal/services/catalog/storage"
)

type fakeStore struct {
	mu       sync.Mutex
	projects map[int64]storage.Project
	puts     int
	getErr   error
	putErr   error
}

func newFakeStore(projects ...storage.Project) *fakeStore {
	s := &fakeStore{projects: make(map[int64]storage.Project)}
	for _, project := range projects {
		s.projects[project.ID] = project
	}
	return s
}

func (s *fakeStore) GetProject(_ context.Context, id int64) (storage.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return storage.Project{}, s.getErr
	}
	project, ok := s.projects[id]
	if !ok {
		return storage.Project{}, storage.ErrNotFound
	}
	return project, nil
}

func (s *fakeStore) PutProject(_ context.Context, project storage.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.projects[project.ID] = project
	return nil
}

func (s *fakeStore) CountProjects(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects), nil
}

type fakeDates struct {
	dates map[int64]string
	errs  map[int64]error
	calls []int64
}

func (f *fakeDates) PublishDate(_ context.Context, videoID int64) (string, error) {
	f.calls = append(f.calls, videoID)
	if err, ok := f.errs[videoID]; ok {
		return "", err
	}
	date, ok := f.dates[videoID]
	if !ok {
		return "", errors.New("unknown video")
	}
	return date, nil
}
