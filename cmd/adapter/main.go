package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api"
	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api/handler"
	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api/middleware"
	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/metrics"
	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/pii"
	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/tiktok"
	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/config"
	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/logger"
	"github.com/V4T54L/zid-tiktok-bridge/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.TikTok.AccessToken == "" {
		logger.Warn("TIKTOK_ACCESS_TOKEN is empty, the events API will reject requests")
	}

	m := metrics.NewBridgeMetrics(prometheus.DefaultRegisterer)

	// --- Start Admin and Metrics Server ---
	adminServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: api.NewAdminRouter(prometheus.DefaultGatherer),
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Initialize Forwarder and Use Case ---
	tiktokClient := tiktok.NewClient(
		tiktok.NewHTTPClient(cfg.ForwardTimeout),
		cfg.TikTok.Endpoint,
		cfg.TikTok.AccessToken,
		logger,
		m,
	)
	forwardUseCase := usecase.NewForwardEventUseCase(tiktokClient, pii.NewHasher(cfg.HashPII), logger, usecase.ForwardOptions{
		PixelID:         cfg.TikTok.PixelID,
		EventSource:     cfg.TikTok.EventSource,
		StoreURL:        cfg.StoreURL,
		DefaultCurrency: cfg.DefaultCurrency,
		InferEventNames: cfg.InferEventNames,
	})

	// --- Initialize Webhook Server ---
	webhookHandler := handler.NewWebhookHandler(forwardUseCase, logger, cfg.MaxEventSize, m)
	router := api.NewRouter(webhookHandler, logger)
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.Logging(logger)(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.ForwardTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting webhook server",
			"addr", server.Addr,
			"endpoint", cfg.TikTok.Endpoint,
			"hash_pii", cfg.HashPII,
			"infer_event_names", cfg.InferEventNames,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("webhook server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("webhook server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
