package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tally/internal/auth"
	"tally/internal/config"
	apphttp "tally/internal/http"
	applog "tally/internal/log"
	"tally/internal/storage"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load(os.Getenv)

	logger := applog.New(cfg.LogLevel, applog.ComponentApp)
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *applog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	srv := apphttp.NewServer(":"+cfg.Port, repo, tokens, cfg, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting tally server", "port", cfg.Port, "db_path", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
