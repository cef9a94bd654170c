package projects

import (
	"context"

	"github.com/louisbranch/lastro/internal/project"
	"github.com/louisbranch/lastro/internal/services/web/requests"
)

type fakeProjects struct {
	records map[project.ID]project.Record
	err     error
	lastID  project.ID
}

func (f *fakeProjects) GetByID(_ context.Context, id project.ID) (project.Record, error) {
	f.lastID = id
	if f.err != nil {
		return project.Record{}, f.err
	}
	record, ok := f.records[id]
	if !ok {
		return project.Record{}, &requests.NotFoundError{ID: id}
	}
	return record, nil
}
