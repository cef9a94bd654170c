// Package projects proxies single project reads to the catalog.
package projects

import (
	"net/http"

	"github.com/louisbranch/lastro/internal/services/web/module"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

// Module serves project detail reads.
type Module struct{}

// New returns a projects module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "projects" }

// Mount wires project route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	var gateway projectGateway = unavailableGateway{}
	if deps.Projects != nil {
		gateway = deps.Projects
	}
	registerRoutes(mux, newHandlers(newService(gateway)))
	return module.Mount{Prefix: routepath.ProjectsPrefix, Handler: mux}, nil
}
