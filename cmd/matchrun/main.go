// matchrun executes one matching pass over all seekers and exits. Useful for
// backfills and for ops to re-run a day whose scheduled trigger was missed.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fitwork/internal/app"
	"fitwork/internal/config"
	"fitwork/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.LogJSON, cfg.App.Environment != "production")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	container, err := app.NewContainer(cfg, zl)
	if err != nil {
		zl.Fatal("failed to build container", zap.Error(err))
	}
	defer func() { _ = container.Close() }()

	application, err := app.Bootstrap(container)
	if err != nil {
		zl.Fatal("failed to bootstrap app", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	stats, err := application.Runner.RunOnce(ctx, start)
	if err != nil {
		zl.Error("matching pass aborted", zap.Error(err))
		os.Exit(1)
	}

	zl.Info("matching pass done",
		zap.Int64("seekers", stats.Seekers),
		zap.Int64("matched", stats.Matched),
		zap.Int64("failed", stats.Failed),
		zap.Duration("took", time.Since(start)),
	)
}
