package listings

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/services/web/module"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

// Module serves the listing view API.
type Module struct{}

// New returns a listings module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "listings" }

// Mount wires listing route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(deps.Views)
	h := newHandlers(svc)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.ListingsPrefix, Handler: mux}, nil
}
