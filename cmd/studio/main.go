// Package main is the entry point for the studio service.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/luminaflow/studio-go/internal/api"
	"github.com/luminaflow/studio-go/internal/assistant"
	"github.com/luminaflow/studio-go/internal/catalog"
	"github.com/luminaflow/studio-go/internal/config"
	"github.com/luminaflow/studio-go/internal/ingest"
	"github.com/luminaflow/studio-go/internal/store"
	"github.com/luminaflow/studio-go/internal/validator"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Info("starting studio",
		slog.String("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.String("assistant_mode", cfg.AssistantMode),
	)

	// Graph store
	st := store.New()
	if cfg.SeedDemo {
		st.Seed()
		logger.Info("seeded demo workflows", slog.Int("workflows", st.Current().Len()))
	}

	// Payload validator and ingestion boundary
	v, err := validator.New()
	if err != nil {
		logger.Error("failed to create validator", "error", err)
		os.Exit(1)
	}
	ing := ingest.New(v)

	// Assistant client
	var asst assistant.Client
	switch cfg.AssistantMode {
	case config.AssistantModeMock:
		asst = assistant.NewMock()
		logger.Info("using mock assistant")
	default:
		asst = assistant.NewOllama(&assistant.OllamaConfig{
			URL:     cfg.OllamaURL,
			Model:   cfg.AssistantModel,
			Timeout: cfg.AssistantTimeout,
		})
		logger.Info("using ollama assistant",
			slog.String("url", cfg.OllamaURL),
			slog.String("model", cfg.AssistantModel),
		)
	}

	// API handlers
	handlers := api.NewHandlers(st, ing, asst, catalog.New(), cfg, logger)
	server := api.NewServer(handlers)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
