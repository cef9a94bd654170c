package catalog

import (
	"flag"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8091" || cfg.GRPCAddr != "localhost:8092" {
		t.Fatalf("addresses = %q %q", cfg.HTTPAddr, cfg.GRPCAddr)
	}
	if cfg.DBPath != filepath.Join("data", "catalog.db") {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.MaxSample != 500 || cfg.ImportInterval != 0 || cfg.SheetURL != "" {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("LASTRO_CATALOG_ALLOWED_ORIGINS", "https://lastro.pt,http://localhost:8080")
	t.Setenv("LASTRO_CATALOG_DB_PATH", "/var/lib/lastro/catalog.db")
	t.Setenv("LASTRO_VIMEO_TOKEN", "vimeo-token")
	t.Setenv("LASTRO_CATALOG_SHEET_URL", "https://sheets.example/export.csv")

	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag-http", "-grpc-addr", "", "-import-interval", "1h"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if want := []string{"https://lastro.pt", "http://localhost:8080"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("origins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.HTTPAddr != "flag-http" || cfg.GRPCAddr != "" {
		t.Fatalf("addresses = %q %q", cfg.HTTPAddr, cfg.GRPCAddr)
	}
	if cfg.DBPath != "/var/lib/lastro/catalog.db" || cfg.VimeoToken != "vimeo-token" {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.SheetURL != "https://sheets.example/export.csv" || cfg.ImportInterval != time.Hour {
		t.Fatalf("import config = %q %v", cfg.SheetURL, cfg.ImportInterval)
	}
}
