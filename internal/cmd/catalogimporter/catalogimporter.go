// Package catalogimporter imports the archive sheet into the catalog
// database from the command line.
package catalogimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/lastro/internal/platform/cmd"
	"github.com/louisbranch/lastro/internal/services/catalog/importer"
	"github.com/louisbranch/lastro/internal/services/catalog/importer/vimeo"
	catalogsqlite "github.com/louisbranch/lastro/internal/services/catalog/storage/sqlite"
)

// Config holds the importer options.
type Config struct {
	Sheet      string `env:"LASTRO_CATALOG_SHEET_URL"`
	DBPath     string `env:"LASTRO_CATALOG_DB_PATH"`
	VimeoToken string `env:"LASTRO_VIMEO_TOKEN"`
	DryRun     bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "catalog.db")
	}
	fs.StringVar(&cfg.Sheet, "sheet", cfg.Sheet, "archive sheet CSV URL or file")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Sheet) == "" {
		return Config{}, errors.New("sheet is required")
	}
	return cfg, nil
}

// Run imports the sheet and writes the report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		return errors.New("db path is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := catalogsqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close catalog store: %v", closeErr)
		}
	}()

	opts := []importer.Option{importer.WithDryRun(cfg.DryRun)}
	if token := strings.TrimSpace(cfg.VimeoToken); token != "" {
		client, err := vimeo.NewClient(token, vimeo.WithLogf(log.Printf))
		if err != nil {
			return fmt.Errorf("create vimeo client: %w", err)
		}
		opts = append(opts, importer.WithDates(client))
	}
	im, err := importer.New(store, opts...)
	if err != nil {
		return err
	}
	report, err := im.ImportSheet(ctx, cfg.Sheet, nil)
	if err != nil {
		return fmt.Errorf("import sheet: %w", err)
	}
	_, err = fmt.Fprintln(out, report.String())
	return err
}
