package projects

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectDetailPattern, h.handleDetail)
	mux.HandleFunc(routepath.ProjectDetailPattern, httpx.MethodNotAllowed(http.MethodGet))
}
