package web

import (
	"context"
	"fmt"

	"github.com/louisbranch/lastro/internal/project"
	"github.com/louisbranch/lastro/internal/services/web/requests"
)

type fakeCatalog struct {
	records map[project.ID]project.Record
}

func (fakeCatalog) GetBatch(_ context.Context, count int) ([]project.Record, error) {
	out := make([]project.Record, 0, count)
	for i := range count {
		out = append(out, project.Record{ID: project.ID(fmt.Sprintf("%d", i)), Title: fmt.Sprintf("Projeto %d", i)})
	}
	return out, nil
}

func (f fakeCatalog) GetByID(_ context.Context, id project.ID) (project.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return project.Record{}, &requests.NotFoundError{ID: id}
	}
	return record, nil
}
