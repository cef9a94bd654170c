package listings

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.Listings, h.handleMount)
	mux.HandleFunc(http.MethodGet+" "+routepath.Listings, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodGet+" "+routepath.ListingPattern, h.handleState)
	mux.HandleFunc(http.MethodDelete+" "+routepath.ListingPattern, h.handleUnmount)

	mux.HandleFunc(http.MethodPost+" "+routepath.ListingMorePattern, h.handleLoadMore)
	mux.HandleFunc(http.MethodGet+" "+routepath.ListingMorePattern, httpx.MethodNotAllowed(http.MethodPost))
}
