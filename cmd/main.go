package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aydmirov/call-logging/config"
	"github.com/aydmirov/call-logging/internal/httpserver"
	"github.com/aydmirov/call-logging/internal/interceptor"
	"github.com/aydmirov/call-logging/internal/metrics"
	"github.com/aydmirov/call-logging/internal/middleware"
	"github.com/aydmirov/call-logging/internal/service"
	"github.com/aydmirov/call-logging/internal/sqllog"
	"github.com/aydmirov/call-logging/internal/store"
	"github.com/aydmirov/call-logging/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.AddSource, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(1000, log)
	collector.Start(ctx)

	settings := sqllog.NewSettings(cfg.SQLLogging.Enabled, sqllog.ParseLevel(cfg.SQLLogging.Level))
	config.Watch(func(next *config.Config) {
		settings.Update(next.SQLLogging.Enabled, sqllog.ParseLevel(next.SQLLogging.Level))
		log.Info("Reloaded SQL logging settings",
			slog.Bool("enabled", next.SQLLogging.Enabled),
			slog.String("level", next.SQLLogging.Level))
	})

	calls := interceptor.New(log,
		interceptor.WithBasePackage(cfg.MethodLogging.BasePackage),
		interceptor.WithExcludePackage(cfg.MethodLogging.ExcludePackage),
		interceptor.WithCollector(collector.EventChannel()))

	sqlCalls := sqllog.NewInterceptor(log, settings,
		sqllog.WithCollector(collector.EventChannel()))

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database",
			slog.String("path", cfg.Database.Path),
			slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	users := service.NewUserService(store.NewUserStore(db, sqlCalls), calls)
	orders := store.NewOrderStore(db, sqlCalls)

	mux := setupRouter(users, orders, collector)
	handler := middleware.New(log, calls).Wrap("http.Router", mux)

	srv, err := httpserver.New(cfg.Server.Address, handler)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Listening", slog.String("address", cfg.Server.Address))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}
