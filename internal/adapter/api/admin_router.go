package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api/handler"
)

// NewAdminRouter creates the router for the admin listener: Prometheus
// metrics from gatherer plus a JSON health check.
func NewAdminRouter(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
