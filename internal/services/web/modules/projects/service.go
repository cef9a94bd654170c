package projects

import (
	"context"
	"strings"

	"github.com/louisbranch/lastro/internal/project"
	apperrors "github.com/louisbranch/lastro/internal/services/web/platform/errors"
	"github.com/louisbranch/lastro/internal/services/web/requests"
)

type projectGateway interface {
	GetByID(ctx context.Context, id project.ID) (project.Record, error)
}

type service struct {
	gateway projectGateway
}

func newService(gateway projectGateway) service {
	return service{gateway: gateway}
}

func (s service) project(ctx context.Context, projectID string) (project.Record, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return project.Record{}, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "project id is required")
	}
	record, err := s.gateway.GetByID(ctx, project.ID(projectID))
	if err != nil {
		return project.Record{}, mapGatewayError(err)
	}
	return record, nil
}

func mapGatewayError(err error) error {
	switch {
	case requests.IsNotFound(err):
		return apperrors.Wrap(apperrors.KindNotFound, "core.error.not_found", err)
	case requests.IsTransport(err):
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", err)
	case apperrors.KindOf(err) != apperrors.KindUnknown:
		return err
	default:
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", err)
	}
}
