// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/lastro/internal/platform/cmd"
	"github.com/louisbranch/lastro/internal/platform/discovery"
	"github.com/louisbranch/lastro/internal/platform/timeouts"
	"github.com/louisbranch/lastro/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr        string        `env:"LASTRO_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	SiteURL         string        `env:"LASTRO_WEB_SITE_URL"`
	CatalogURL      string        `env:"LASTRO_WEB_CATALOG_URL"`
	CatalogGRPCAddr string        `env:"LASTRO_WEB_CATALOG_GRPC_ADDR"`
	GRPCDialTimeout time.Duration `env:"LASTRO_WEB_GRPC_DIAL_TIMEOUT"`
	InitialCount    int           `env:"LASTRO_WEB_INITIAL_COUNT" envDefault:"6"`
	ViewCapacity    int           `env:"LASTRO_WEB_VIEW_CAPACITY" envDefault:"1024"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.CatalogURL = discovery.OrDefaultHTTPBaseURL(cfg.CatalogURL, discovery.ServiceCatalog)
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "Public origin used for canonical links")
	fs.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "Catalog HTTP API base URL")
	fs.StringVar(&cfg.CatalogGRPCAddr, "catalog-grpc-addr", cfg.CatalogGRPCAddr, "Catalog gRPC health address probed at startup")
	fs.IntVar(&cfg.InitialCount, "initial-count", cfg.InitialCount, "Records loaded when a listing mounts")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:        cfg.HTTPAddr,
			SiteURL:         cfg.SiteURL,
			CatalogURL:      cfg.CatalogURL,
			CatalogGRPCAddr: cfg.CatalogGRPCAddr,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
			InitialCount:    cfg.InitialCount,
			ViewCapacity:    cfg.ViewCapacity,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
