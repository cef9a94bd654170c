// Package web hosts the browser-facing LASTRO service: document shells, the
// listing API and the static bundle that drives the grid.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/lastro/internal/platform/grpc"
	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/platform/observability"
	"github.com/louisbranch/lastro/internal/platform/timeouts"
	webapp "github.com/louisbranch/lastro/internal/services/web/app"
	"github.com/louisbranch/lastro/internal/services/web/listing"
	"github.com/louisbranch/lastro/internal/services/web/metadata"
	"github.com/louisbranch/lastro/internal/services/web/module"
	"github.com/louisbranch/lastro/internal/services/web/modules/listings"
	"github.com/louisbranch/lastro/internal/services/web/modules/pages"
	"github.com/louisbranch/lastro/internal/services/web/modules/projects"
	"github.com/louisbranch/lastro/internal/services/web/requests"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
	webstatic "github.com/louisbranch/lastro/internal/services/web/static"
	"github.com/louisbranch/lastro/internal/services/web/views"
)

// Catalog is the project source the web service reads from.
type Catalog interface {
	listing.Fetcher
	module.ProjectClient
}

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// SiteURL is the public origin used for canonical links.
	SiteURL string
	// CatalogURL is the catalog HTTP API base, e.g. http://localhost:8091.
	CatalogURL string
	// CatalogGRPCAddr, when set, is probed for health before serving.
	CatalogGRPCAddr string
	GRPCDialTimeout time.Duration
	InitialCount    int
	ViewCapacity    int

	// Catalog replaces the HTTP client built from CatalogURL.
	Catalog Catalog
	// Views replaces the registry built from Catalog.
	Views *views.Registry
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	views      *views.Registry
}

// NewHandler builds the root handler from the default modules.
func NewHandler(cfg Config) (http.Handler, error) {
	routes, err := metadata.DefaultRoutes()
	if err != nil {
		return nil, fmt.Errorf("load metadata routes: %w", err)
	}
	deps := module.Dependencies{
		Views:  cfg.Views,
		Routes: routes.WithBaseURL(cfg.SiteURL),
		Logf:   log.Printf,
	}
	if cfg.Catalog != nil {
		deps.Projects = cfg.Catalog
	}
	h, err := webapp.Compose(webapp.ComposeInput{
		Dependencies: deps,
		Modules:      DefaultModules(),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID("web"),
		observability.RequestLogger(log.Default()),
	), nil
}

// DefaultModules returns the modules every web server mounts.
func DefaultModules() []module.Module {
	return []module.Module{
		pages.New(),
		listings.New(),
		projects.New(),
	}
}

// NewServer validates config and constructs a web server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.Catalog == nil {
		catalog, err := newCatalogClient(cfg.CatalogURL)
		if err != nil {
			return nil, err
		}
		if catalog != nil {
			cfg.Catalog = catalog
		}
	}
	probeCatalog(ctx, cfg)

	ownsViews := false
	if cfg.Views == nil && cfg.Catalog != nil {
		registry, err := views.NewRegistry(cfg.Catalog,
			views.WithInitialCount(cfg.InitialCount),
			views.WithCapacity(cfg.ViewCapacity),
			views.WithLogf(log.Printf),
		)
		if err != nil {
			return nil, fmt.Errorf("create listing views: %w", err)
		}
		cfg.Views = registry
		ownsViews = true
	}
	if cfg.Catalog == nil {
		log.Printf("catalog is not configured; listing routes report unavailable")
	}

	handler, err := NewHandler(cfg)
	if err != nil {
		if ownsViews {
			cfg.Views.Close()
		}
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	server := &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}
	if ownsViews {
		server.views = cfg.Views
	}
	return server, nil
}

func newCatalogClient(baseURL string) (*requests.Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, nil
	}
	client, err := requests.NewClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	return client, nil
}

// probeCatalog waits for the catalog gRPC health service. A failed probe is
// logged and startup continues; listing calls surface their own errors.
func probeCatalog(ctx context.Context, cfg Config) {
	addr := strings.TrimSpace(cfg.CatalogGRPCAddr)
	if addr == "" {
		return
	}
	timeout := cfg.GRPCDialTimeout
	if timeout <= 0 {
		timeout = timeouts.GRPCDial
	}
	logf := func(format string, args ...any) {
		log.Printf("catalog %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, addr, timeout, logf)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageHealth {
			log.Printf("catalog gRPC health check failed for %s: %v", addr, dialErr.Err)
			return
		}
		log.Printf("dial catalog gRPC %s: %v", addr, err)
		return
	}
	_ = conn.Close()
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("web listening on %s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		s.closeViews()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		s.closeViews()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.closeViews()
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}

func (s *Server) closeViews() {
	if s.views != nil {
		s.views.Close()
	}
}
