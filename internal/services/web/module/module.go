// Package module defines the contract between the web root and its feature
// modules.
package module

import (
	"context"
	"net/http"

	"github.com/louisbranch/lastro/internal/project"
	"github.com/louisbranch/lastro/internal/services/web/metadata"
	"github.com/louisbranch/lastro/internal/services/web/views"
)

// ProjectClient reads project details from the catalog.
type ProjectClient interface {
	GetByID(ctx context.Context, id project.ID) (project.Record, error)
}

// Dependencies carries the shared collaborators modules may use. Any field
// may be nil; modules degrade to an unavailable response.
type Dependencies struct {
	Projects ProjectClient
	Views    *views.Registry
	Routes   metadata.Routes
	Logf     func(string, ...any)
}

// Mount is what a module contributes to the root mux.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is one feature area of the web service.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
