package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BridgeMetrics holds all Prometheus metrics for the webhook bridge.
type BridgeMetrics struct {
	WebhooksTotal     *prometheus.CounterVec
	BytesTotal        prometheus.Counter
	UpstreamResponses *prometheus.CounterVec
	UpstreamDuration  prometheus.Histogram
}

// NewBridgeMetrics initializes the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewBridgeMetrics(reg prometheus.Registerer) *BridgeMetrics {
	factory := promauto.With(reg)
	return &BridgeMetrics{
		WebhooksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zid_bridge",
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Total number of webhook events by outcome and TikTok event name.",
		}, []string{"status", "event"}), // status: forwarded, error_forward, error_size
		BytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "zid_bridge",
			Subsystem: "webhook",
			Name:      "bytes_total",
			Help:      "Total number of webhook body bytes received.",
		}),
		UpstreamResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zid_bridge",
			Subsystem: "tiktok",
			Name:      "responses_total",
			Help:      "Total number of Events API responses by status class.",
		}, []string{"class"}), // class: 2xx, 4xx, 5xx, transport_error
		UpstreamDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zid_bridge",
			Subsystem: "tiktok",
			Name:      "request_duration_seconds",
			Help:      "Latency of Events API calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// StatusClass buckets an HTTP status code for the responses counter.
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "other"
	}
}
