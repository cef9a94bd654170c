package pages

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/services/web/module"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

// Module serves the document shells, health and the catch-all redirect.
type Module struct{}

// New returns a pages module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "pages" }

// Mount wires page route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(deps.Routes)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
