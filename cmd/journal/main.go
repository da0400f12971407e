// Package main is the entry point for the sticker journal server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/easeaico/sticker-journal/internal/api"
	"github.com/easeaico/sticker-journal/internal/config"
	"github.com/easeaico/sticker-journal/internal/generate"
	"github.com/easeaico/sticker-journal/internal/journal"
	"github.com/easeaico/sticker-journal/internal/logger"
	"github.com/easeaico/sticker-journal/internal/notebook"
	"github.com/easeaico/sticker-journal/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Service:  "sticker-journal",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, cleanup, err := initialize(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize", zap.Error(err))
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zlog.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zlog.Error("Server stopped", zap.Error(err))
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Failed to shut down cleanly", zap.Error(err))
	}
}

// initialize wires the store, the generative client and the notebook into an HTTP server.
func initialize(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*api.Server, func(), error) {
	st, err := store.Open(ctx, cfg.DBType, cfg.DatabaseURL, zlog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	gen, err := generate.NewFromConfig(ctx, generate.Config{
		APIKey:     cfg.GoogleAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
	}, zlog)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if !gen.Configured() {
		zlog.Warn("GOOGLE_API_KEY is not set; prompt and sticker generation are disabled")
	}

	nb := notebook.New(st, gen, zlog)
	if _, err := nb.Open(ctx, journal.Today(time.Now())); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to open today's page: %w", err)
	}

	srv := api.NewServer(api.ServerConfig{
		Addr:      cfg.Addr,
		BodyLimit: cfg.BodyLimit,
	}, api.NewJournalRoutes(nb, st, zlog), zlog)

	cleanup := func() {
		if err := st.Close(); err != nil {
			zlog.Warn("Failed to close store", zap.Error(err))
		}
	}

	zlog.Info("Journal initialized",
		zap.String("db_type", cfg.DBType),
		zap.String("text_model", cfg.TextModel),
		zap.String("image_model", cfg.ImageModel))
	return srv, cleanup, nil
}
