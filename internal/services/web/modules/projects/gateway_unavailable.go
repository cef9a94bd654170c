package projects

import (
	"context"

	"github.com/louisbranch/lastro/internal/project"
	apperrors "github.com/louisbranch/lastro/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) GetByID(context.Context, project.ID) (project.Record, error) {
	return project.Record{}, apperrors.E(apperrors.KindUnavailable, "project catalog is not configured")
}
