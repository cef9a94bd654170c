package listings

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/lastro/internal/services/web/platform/errors"
	"github.com/louisbranch/lastro/internal/services/web/views"
)

// viewRegistry is the subset of views.Registry the service needs.
type viewRegistry interface {
	Mount(ctx context.Context) (*views.View, error)
	Get(viewID string) (*views.View, error)
	Unmount(viewID string) error
}

type service struct {
	views viewRegistry
}

// stateView summarizes a mounted listing without its records.
type stateView struct {
	ViewID        string `json:"viewId"`
	Total         int    `json:"total"`
	PreviousCount int    `json:"previousCount"`
	IsLoadingMore bool   `json:"isLoadingMore"`
}

func newService(registry *views.Registry) service {
	if registry == nil {
		return service{views: unavailableRegistry{}}
	}
	return service{views: registry}
}

func (s service) mount(ctx context.Context) (views.Update, error) {
	view, err := s.views.Mount(ctx)
	if err != nil {
		return views.Update{}, mapRegistryError(err)
	}
	return view.Pending(), nil
}

func (s service) loadMore(ctx context.Context, viewID string) (views.Update, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return views.Update{}, mapRegistryError(err)
	}
	update, err := view.LoadMore(ctx)
	if err != nil {
		return views.Update{}, mapRegistryError(err)
	}
	return update, nil
}

func (s service) state(viewID string) (stateView, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return stateView{}, mapRegistryError(err)
	}
	state := view.State()
	return stateView{
		ViewID:        view.ID,
		Total:         len(state.Records),
		PreviousCount: state.PreviousCount,
		IsLoadingMore: state.IsLoadingMore,
	}, nil
}

func (s service) unmount(viewID string) error {
	return mapRegistryError(s.views.Unmount(viewID))
}

func mapRegistryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, views.ErrNotMounted) {
		return apperrors.EK(apperrors.KindNotFound, "core.error.not_found", err.Error())
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", err)
}
