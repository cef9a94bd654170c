// Package app composes feature modules into the web root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/lastro/internal/services/web/module"
)

// ComposeInput carries the modules to mount and their shared dependencies.
type ComposeInput struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// Compose builds a root handler from modules. A prefix ending in a slash also
// claims its bare form. Two modules claiming the same prefix is a
// configuration error.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, err := feature.Mount(input.Dependencies)
		if err != nil {
			return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		prefix := strings.TrimSpace(mount.Prefix)
		if prefix == "" {
			return nil, fmt.Errorf("module %q returned empty mount prefix", feature.ID())
		}
		if mount.Handler == nil {
			return nil, fmt.Errorf("module %q returned nil handler", feature.ID())
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, mount.Handler)
		// Collection roots like /api/listings are served without a redirect.
		if bare := strings.TrimSuffix(prefix, "/"); bare != "" && bare != prefix {
			root.Handle(bare, mount.Handler)
		}
	}
	return root, nil
}
