package projects

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/services/web/platform/weberror"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.project(httpx.RequestContext(r), r.PathValue("projectID"))
	if err != nil {
		weberror.WriteJSON(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, record)
}
