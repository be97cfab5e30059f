// Command api serves the credit card rewards HTTP API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pickcard/rewards-backend/internal/api"
	"github.com/pickcard/rewards-backend/internal/catalog"
	"github.com/pickcard/rewards-backend/internal/infrastructure/config"
	"github.com/pickcard/rewards-backend/internal/infrastructure/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	loader := newLoader(cfg)
	cat, err := loader.Load()
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded",
		"cards", len(cat.Cards()),
		"merchants", len(cat.Merchants()),
		"categories", len(cat.Categories()))

	server := api.NewServer(cfg, cat, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}

// newLoader picks the catalog source. A SQLite path wins over a YAML
// directory when both are configured.
func newLoader(cfg *config.Config) catalog.Loader {
	if cfg.Catalog.SQLitePath != "" {
		return &catalog.SQLiteLoader{Path: cfg.Catalog.SQLitePath}
	}
	return &catalog.YAMLLoader{Dir: cfg.Catalog.Dir}
}
