package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alorle/m3u-editor/api"
	"github.com/alorle/m3u-editor/config"
	"github.com/alorle/m3u-editor/internal/adapter/driven"
	"github.com/alorle/m3u-editor/internal/adapter/driver"
	"github.com/alorle/m3u-editor/internal/application"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Create structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting m3u-editor",
		"addr", cfg.ListenAddr(),
		"export_dir", cfg.Export.Dir,
		"upload_max_bytes", int64(cfg.Upload.MaxBytes),
		"cors_allowed_origins", cfg.CORS.AllowedOrigins,
		"log_level", cfg.Log.Level,
	)

	doc, err := api.LoadSpec(context.Background())
	if err != nil {
		log.Fatalf("failed to load openapi spec: %v", err)
	}

	// Create driven adapters
	store, err := driven.NewTempFileStore(cfg.Export.Dir)
	if err != nil {
		log.Fatalf("failed to create export store: %v", err)
	}

	// Create application services
	playlistService := application.NewPlaylistService(store, logger)
	healthService := application.NewHealthService(store)

	// Create HTTP handlers
	openAPIHandler, err := driver.NewOpenAPIHTTPHandler(doc)
	if err != nil {
		log.Fatalf("failed to render openapi spec: %v", err)
	}

	spaHandler, err := newSPAHandler(cfg.UI.Dir, cfg.UI.DevURL, logger)
	if err != nil {
		log.Fatalf("failed to create ui handler: %v", err)
	}

	handler := driver.NewRouter(driver.RouterOptions{
		Playlist:       driver.NewPlaylistHTTPHandler(playlistService, logger, cfg.Export.Filename, cfg.HTTP.DownloadWriteTimeout),
		Health:         driver.NewHealthHTTPHandler(healthService),
		OpenAPI:        openAPIHandler,
		Spec:           doc,
		Metrics:        promhttp.Handler(),
		SPA:            spaHandler,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   int64(cfg.Upload.MaxBytes),
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
