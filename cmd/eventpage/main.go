package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZevWepster/eventpage/internal/app"
	"github.com/ZevWepster/eventpage/internal/config"
	"github.com/ZevWepster/eventpage/internal/gateway"
	"github.com/ZevWepster/eventpage/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level(cfg.LogLevel)}))
	logger.Info("eventpage starting", "version", version.Version, "gateway", cfg.GatewayURL)

	gw := gateway.New(gateway.Options{
		BaseURL: cfg.GatewayURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	application := app.New(cfg, gw, logger)
	return application.Run(ctx)
}

func level(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
