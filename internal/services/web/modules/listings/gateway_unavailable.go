package listings

import (
	"context"

	apperrors "github.com/louisbranch/lastro/internal/services/web/platform/errors"
	"github.com/louisbranch/lastro/internal/services/web/views"
)

type unavailableRegistry struct{}

func (unavailableRegistry) Mount(context.Context) (*views.View, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "listing views are not configured")
}

func (unavailableRegistry) Get(string) (*views.View, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "listing views are not configured")
}

func (unavailableRegistry) Unmount(string) error {
	return apperrors.E(apperrors.KindUnavailable, "listing views are not configured")
}
