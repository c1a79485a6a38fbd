// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/laguz/internal/analyzer"
	"github.com/starford/laguz/internal/api"
	"github.com/starford/laguz/internal/importer"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/mcpserver"
	"github.com/starford/laguz/internal/sse"
	"github.com/starford/laguz/internal/store"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("model_enabled", cfg.Model.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, entries, err := buildService(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer entries.Close()

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if entries.UsingFallback() {
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start inbox importer.
	if cfg.Inbox.Enabled {
		im := importer.New(svc, broker, logger, cfg.Inbox.Path)
		g.Go(func() error {
			if err := im.Run(gCtx); err != nil {
				logger.Error("Importer error", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP stdio server sharing the same storage and analyzer
// stack as the HTTP application. Logs go to stderr so stdout stays clean for
// the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, entries, err := buildService(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer entries.Close()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}

// buildService wires the store stack, the analyzer, and the journal service.
// A primary database that fails to open is logged and left nil; the failover
// store keeps the application usable on the flat-file fallback.
func buildService(ctx context.Context, logger *slog.Logger, cfg *Config) (*journal.Service, *store.Failover, error) {
	var primary store.Store
	db, err := store.OpenSQLite(cfg.SQLite.Path)
	if err != nil {
		logger.Warn("Primary store unavailable, falling back to local storage",
			slog.String("path", cfg.SQLite.Path),
			slog.String("error", err.Error()))
	} else {
		primary = db
	}
	entries := store.NewFailover(logger, primary, store.NewLocal(cfg.SQLite.FallbackPath))

	var client *analyzer.OllamaClient
	if cfg.Model.Enabled {
		timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second
		client = analyzer.NewOllamaClient(cfg.Model.Endpoint, timeout)
	}
	an := analyzer.New(ctx, logger, client, cfg.Model.SummaryModel, cfg.Model.SentimentModel)

	svc := journal.NewService(an, entries, journal.Options{
		SummaryMaxWords: cfg.Journal.SummaryMaxWords,
		SummaryMinWords: cfg.Journal.SummaryMinWords,
		KeywordCount:    cfg.Journal.KeywordCount,
		ClusterCount:    cfg.Journal.ClusterCount,
	})
	return svc, entries, nil
}
