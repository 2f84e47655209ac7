// Command server serves the teapot API and the compiled frontend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
	"github.com/ctfkit/teapot-webservice/internal/server"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	logger := applog.New(os.Stdout, zap.InfoLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = applog.WithLogger(ctx, logger)

	cmd := newRootCmd(os.Getenv, runServer)
	if err := cmd.ExecuteContext(ctx); err != nil {
		applog.LogError(ctx, "server failed", err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg server.Config) error {
	cfg.Version = Version
	applog.LogInfo(ctx, "starting server",
		zap.String("bindAddress", cfg.BindAddress.String()),
		zap.String("staticDir", cfg.StaticDir),
		zap.String("metricsAddress", cfg.MetricsAddress),
		zap.Bool("apiDocs", cfg.APIDocs),
		zap.String("version", cfg.Version),
	)
	return server.New(cfg).Run(ctx)
}
