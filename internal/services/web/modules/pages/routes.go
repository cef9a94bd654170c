package pages

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.About, h.handleAbout)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		mux.HandleFunc(method+" "+routepath.APIPrefix+"{rest...}", h.handleAPINotFound)
	}
	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleRedirectHome)
}
