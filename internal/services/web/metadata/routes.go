package metadata

import (
	_ "embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var embeddedRoutes []byte

type routesFile struct {
	Routes map[string]Snapshot `yaml:"routes"`
}

// Routes resolves the snapshot for a navigable path.
type Routes struct {
	defaults  Snapshot
	overrides map[string]Snapshot
}

// LoadRoutes parses per-route overrides and layers them on defaults.
func LoadRoutes(data []byte, defaults Snapshot) (Routes, error) {
	var file routesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Routes{}, fmt.Errorf("parse metadata routes: %w", err)
	}
	overrides := make(map[string]Snapshot, len(file.Routes))
	for route, snapshot := range file.Routes {
		clean := cleanRoute(route)
		if _, exists := overrides[clean]; exists {
			return Routes{}, fmt.Errorf("metadata route %q declared twice", clean)
		}
		overrides[clean] = snapshot
	}
	return Routes{defaults: defaults, overrides: overrides}, nil
}

// DefaultRoutes returns the embedded route table over Defaults.
func DefaultRoutes() (Routes, error) {
	return LoadRoutes(embeddedRoutes, Defaults())
}

// WithBaseURL rebases the default canonical and image URLs onto baseURL.
func (r Routes) WithBaseURL(baseURL string) Routes {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return r
	}
	previous := strings.TrimRight(r.defaults.URL, "/")
	rebase := func(value string) string {
		if previous != "" && strings.HasPrefix(value, previous) {
			return baseURL + strings.TrimPrefix(value, previous)
		}
		return value
	}
	out := Routes{defaults: r.defaults, overrides: make(map[string]Snapshot, len(r.overrides))}
	out.defaults.URL = baseURL
	out.defaults.Image = rebase(r.defaults.Image)
	for route, snapshot := range r.overrides {
		snapshot.URL = rebase(snapshot.URL)
		snapshot.Image = rebase(snapshot.Image)
		out.overrides[route] = snapshot
	}
	return out
}

// ForRoute returns the snapshot for route. Unknown routes get the defaults.
func (r Routes) ForRoute(route string) Snapshot {
	override, ok := r.overrides[cleanRoute(route)]
	if !ok {
		return r.defaults
	}
	return r.defaults.Merge(override)
}

func cleanRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return path.Clean(route)
}
