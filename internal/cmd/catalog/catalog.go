// Package catalog parses catalog service flags and launches the service.
package catalog

import (
	"context"
	"flag"
	"path/filepath"
	"time"

	entrypoint "github.com/louisbranch/lastro/internal/platform/cmd"
	server "github.com/louisbranch/lastro/internal/services/catalog/app"
)

// Config holds catalog command configuration.
type Config struct {
	HTTPAddr       string        `env:"LASTRO_CATALOG_HTTP_ADDR" envDefault:"localhost:8091"`
	GRPCAddr       string        `env:"LASTRO_CATALOG_GRPC_ADDR" envDefault:"localhost:8092"`
	DBPath         string        `env:"LASTRO_CATALOG_DB_PATH"`
	AllowedOrigins []string      `env:"LASTRO_CATALOG_ALLOWED_ORIGINS" envSeparator:","`
	MaxSample      int           `env:"LASTRO_CATALOG_MAX_SAMPLE" envDefault:"500"`
	SheetURL       string        `env:"LASTRO_CATALOG_SHEET_URL"`
	VimeoToken     string        `env:"LASTRO_VIMEO_TOKEN"`
	ImportToken    string        `env:"LASTRO_CATALOG_IMPORT_TOKEN"`
	ImportInterval time.Duration `env:"LASTRO_CATALOG_IMPORT_INTERVAL"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "catalog.db")
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The catalog HTTP API address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "The catalog gRPC health address (empty disables it)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.StringVar(&cfg.SheetURL, "sheet-url", cfg.SheetURL, "archive sheet CSV URL or file imported when the catalog is empty")
	fs.DurationVar(&cfg.ImportInterval, "import-interval", cfg.ImportInterval, "re-import the sheet on this interval (0 disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the catalog service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCatalog, func(ctx context.Context) error {
		srv, err := server.New(server.Config{
			HTTPAddr:       cfg.HTTPAddr,
			GRPCAddr:       cfg.GRPCAddr,
			DBPath:         cfg.DBPath,
			AllowedOrigins: cfg.AllowedOrigins,
			MaxSample:      cfg.MaxSample,
			SheetURL:       cfg.SheetURL,
			VimeoToken:     cfg.VimeoToken,
			ImportToken:    cfg.ImportToken,
			ImportInterval: cfg.ImportInterval,
		})
		if err != nil {
			return err
		}
		return srv.Serve(ctx)
	})
}
