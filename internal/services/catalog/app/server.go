// Package server wires the catalog storage, HTTP API, health service and
// sheet import lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	platformgrpc "github.com/louisbranch/lastro/internal/platform/grpc"
	"github.com/louisbranch/lastro/internal/platform/httpx"
	"github.com/louisbranch/lastro/internal/platform/observability"
	"github.com/louisbranch/lastro/internal/platform/timeouts"
	"github.com/louisbranch/lastro/internal/services/catalog/api/projects"
	"github.com/louisbranch/lastro/internal/services/catalog/importer"
	"github.com/louisbranch/lastro/internal/services/catalog/importer/vimeo"
	catalogsqlite "github.com/louisbranch/lastro/internal/services/catalog/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// HealthService is the gRPC health service name the catalog reports.
const HealthService = "lastro.catalog"

// Config defines startup inputs for the catalog service.
type Config struct {
	HTTPAddr string
	// GRPCAddr serves the health service. Empty disables it.
	GRPCAddr string
	DBPath   string
	// AllowedOrigins lists the browser origins granted CORS access.
	AllowedOrigins []string
	MaxSample      int

	// SheetURL is the archive sheet CSV, as a URL or a file path.
	SheetURL string
	// VimeoToken enables publish date lookups during imports.
	VimeoToken string
	// ImportToken enables POST /import for bearer holders.
	ImportToken string
	// ImportInterval re-imports the sheet periodically when positive.
	ImportInterval time.Duration
}

// Server hosts the catalog HTTP API and gRPC health lifecycle.
type Server struct {
	httpListener net.Listener
	httpServer   *http.Server
	grpcListener net.Listener
	health       platformgrpc.HealthServer
	store        *catalogsqlite.Store
	importer     *importer.Importer
	importMu     sync.Mutex
	sheetURL     string
	interval     time.Duration
}

// New opens the store and binds the listeners described by cfg.
func New(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "catalog.db")
	}
	store, err := openCatalogStore(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    store,
		sheetURL: strings.TrimSpace(cfg.SheetURL),
		interval: cfg.ImportInterval,
	}
	if s.importer, err = newImporter(store, cfg.VimeoToken); err != nil {
		s.Close()
		return nil, err
	}

	apiOpts := []projects.Option{projects.WithMaxSample(cfg.MaxSample)}
	if s.sheetURL != "" {
		apiOpts = append(apiOpts, projects.WithImport(s.runImport, cfg.ImportToken))
	}
	api, err := projects.NewService(store, apiOpts...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create projects api: %w", err)
	}
	mux := http.NewServeMux()
	api.Register(mux)

	s.httpListener, err = net.Listen("tcp", httpAddr)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}
	s.httpServer = &http.Server{
		Handler: httpx.Chain(mux,
			httpx.RecoverPanic(),
			httpx.RequestID("catalog"),
			observability.RequestLogger(log.Default()),
			projects.CORS(cfg.AllowedOrigins),
		),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	if grpcAddr := strings.TrimSpace(cfg.GRPCAddr); grpcAddr != "" {
		s.grpcListener, err = net.Listen("tcp", grpcAddr)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("listen on %s: %w", grpcAddr, err)
		}
		s.health = platformgrpc.NewHealthServer([]string{HealthService}, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	return s, nil
}

func newImporter(store *catalogsqlite.Store, vimeoToken string) (*importer.Importer, error) {
	var opts []importer.Option
	if token := strings.TrimSpace(vimeoToken); token != "" {
		client, err := vimeo.NewClient(token, vimeo.WithLogf(log.Printf))
		if err != nil {
			return nil, fmt.Errorf("create vimeo client: %w", err)
		}
		opts = append(opts, importer.WithDates(client))
	}
	im, err := importer.New(store, opts...)
	if err != nil {
		return nil, fmt.Errorf("create importer: %w", err)
	}
	return im, nil
}

// HTTPAddr returns the bound HTTP address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound health address, or "" when disabled.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Serve runs the HTTP API, the health service and the import loop until
// context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("catalog http listening at %v", s.httpListener.Addr())
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	if s.grpcListener != nil {
		group.Go(func() error {
			log.Printf("catalog health listening at %v", s.grpcListener.Addr())
			if err := s.health.Server.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("serve gRPC: %w", err)
			}
			return nil
		})
	}
	if s.sheetURL != "" {
		group.Go(func() error {
			s.importLoop(groupCtx)
			return nil
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		return s.shutdown()
	})
	return group.Wait()
}

func (s *Server) shutdown() error {
	if s.health.Health != nil {
		s.health.Health.Shutdown()
	}
	if s.health.Server != nil {
		s.health.Server.GracefulStop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown catalog http server: %w", err)
	}
	return nil
}

// importLoop imports the sheet once when the store is empty, then on every
// tick of the configured interval. Failures are logged and retried on the
// next tick.
func (s *Server) importLoop(ctx context.Context) {
	count, err := s.store.CountProjects(ctx)
	switch {
	case err != nil:
		log.Printf("count projects: %v", err)
	case count == 0:
		log.Printf("catalog is empty; importing %s", s.sheetURL)
		s.logImport(ctx)
	}
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logImport(ctx)
		}
	}
}

func (s *Server) logImport(ctx context.Context) {
	report, err := s.runImport(ctx)
	if errors.Is(err, projects.ErrImportRunning) {
		log.Printf("import sheet: skipped, another import is running")
		return
	}
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("import sheet: %v", err)
		}
		return
	}
	log.Printf("import sheet:\n%s", report)
}

// runImport runs one import at a time across the loop and the API. A call
// made while another import runs returns projects.ErrImportRunning.
func (s *Server) runImport(ctx context.Context) (string, error) {
	if !s.importMu.TryLock() {
		return "", projects.ErrImportRunning
	}
	defer s.importMu.Unlock()
	report, err := s.importer.ImportSheet(ctx, s.sheetURL, &http.Client{Timeout: 2 * timeouts.HTTPRequest})
	if err != nil {
		return "", err
	}
	return report.String(), nil
}

// Close releases catalog server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health.Health != nil {
		s.health.Health.Shutdown()
	}
	if s.health.Server != nil {
		s.health.Server.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close catalog store: %v", err)
		}
		s.store = nil
	}
}

func openCatalogStore(path string) (*catalogsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := catalogsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog sqlite store: %w", err)
	}
	return store, nil
}
