package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mist/mist/internal/callback"
	"github.com/mist/mist/internal/catalog"
	"github.com/mist/mist/internal/config"
	"github.com/mist/mist/internal/controller"
	"github.com/mist/mist/internal/store"
	"github.com/mist/mist/internal/updates"
	"github.com/mist/mist/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var dbStore store.Store
	if cfg.DB.Type == "postgres" {
		dbStore, err = store.NewPostgresStore(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Error("Failed to initialize postgres store", "error", err)
			os.Exit(1)
		}
		logger.Info("Using PostgreSQL store")
	} else {
		dbStore, err = store.NewSQLiteStore(cfg.DB.Path)
		if err != nil {
			logger.Error("Failed to initialize sqlite store", "error", err)
			os.Exit(1)
		}
		logger.Info("Using SQLite store", "path", cfg.DB.Path)
	}
	defer dbStore.Close()

	if err := catalog.Seed(ctx, dbStore, logger); err != nil {
		logger.Error("Failed to seed template catalog", "error", err)
		os.Exit(1)
	}

	checker := updates.NewChecker(&updates.GitTagSource{RepoURL: cfg.Updates.RepoURL})
	apiHandler := controller.NewHandler(dbStore, checker, logger)
	apiHandler.CheckTimeout = cfg.Updates.Timeout

	callbackHandler, err := callback.NewHandler(logger)
	if err != nil {
		logger.Error("Failed to initialize callback handler", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: controller.NewRouter(apiHandler, callbackHandler),
	}

	go func() {
		logger.Info("Starting server", "addr", cfg.Server.Addr, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server shutdown timed out", "error", err)
	}
	logger.Info("Server stopped")
}
