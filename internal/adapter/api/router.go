package api

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api/handler"
	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api/middleware"
)

// NewRouter creates and configures the main HTTP router for the webhook service.
func NewRouter(webhookHandler *handler.WebhookHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	recoverer := middleware.Recover(logger)
	webhook := func(fn http.HandlerFunc) http.Handler {
		return middleware.CORS(recoverer(fn))
	}

	// Routes
	mux.Handle("GET "+handler.WebhookPath, webhook(webhookHandler.Ready))
	mux.Handle("OPTIONS "+handler.WebhookPath, webhook(webhookHandler.Preflight))
	mux.Handle("POST "+handler.WebhookPath, webhook(webhookHandler.Receive))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
