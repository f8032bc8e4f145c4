package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/chunkrelay/chunkrelay/internal/config"
	"github.com/chunkrelay/chunkrelay/internal/delivery"
	"github.com/chunkrelay/chunkrelay/internal/handlers"
	"github.com/chunkrelay/chunkrelay/internal/logger"
	"github.com/chunkrelay/chunkrelay/internal/server"
	"github.com/chunkrelay/chunkrelay/internal/version"
)

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

// provideDeliverer builds the outbound Discord deliverer. A missing target
// is not an error: the split and preview APIs work without one, and the
// relay route reports 503 until a target is configured.
func provideDeliverer(cfg config.Config, log *slog.Logger) (*delivery.Deliverer, error) {
	if cfg.Discord.WebhookURL == "" && cfg.Discord.BotToken == "" {
		log.Warn("no discord target configured; /api/relay is disabled")
		return nil, nil
	}
	poster, err := delivery.NewPoster(cfg.Discord)
	if err != nil {
		return nil, fmt.Errorf("configure discord poster: %w", err)
	}
	return delivery.New(poster, cfg.Delivery, log), nil
}

func provideServer(log *slog.Logger, cfg config.Config, deliverer *delivery.Deliverer) *server.Server {
	return server.NewServer(log, cfg.Server.Addr,
		handlers.NewPingHandler(log),
		handlers.NewRelayHandler(log, cfg, deliverer),
		handlers.NewPreviewHandler(log, cfg),
	)
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting chunkrelay %s\n", version.GetInfo())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDeliverer,
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	)
	app.Run()
}
