// Package listings serves the JSON API the browser uses to mount a project
// listing and load more projects into it.
package listings

import (
	"net/http"
	"strings"

	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/services/web/platform/weberror"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleMount(w http.ResponseWriter, r *http.Request) {
	update, err := h.service.mount(httpx.RequestContext(r))
	if err != nil {
		weberror.WriteJSON(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, update)
}

func (h handlers) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	update, err := h.service.loadMore(httpx.RequestContext(r), viewID(r))
	if err != nil {
		weberror.WriteJSON(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, update)
}

func (h handlers) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.state(viewID(r))
	if err != nil {
		weberror.WriteJSON(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, state)
}

func (h handlers) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.unmount(viewID(r)); err != nil {
		weberror.WriteJSON(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func viewID(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("viewID"))
}
