package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	catalogimporter "github.com/louisbranch/lastro/internal/cmd/catalogimporter"
	"github.com/louisbranch/lastro/internal/platform/config"
)

func main() {
	cfg, err := catalogimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := catalogimporter.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
