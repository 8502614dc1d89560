package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		204: "2xx",
		302: "3xx",
		400: "4xx",
		429: "4xx",
		500: "5xx",
		503: "5xx",
		0:   "other",
	}
	for code, want := range tests {
		if got := StatusClass(code); got != want {
			t.Errorf("StatusClass(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestNewBridgeMetrics_IsolatedRegistries(t *testing.T) {
	// Two instances must not collide when each has its own registry.
	a := NewBridgeMetrics(prometheus.NewRegistry())
	b := NewBridgeMetrics(prometheus.NewRegistry())

	a.WebhooksTotal.WithLabelValues("forwarded", "Purchase").Inc()

	if got := testutil.ToFloat64(a.WebhooksTotal.WithLabelValues("forwarded", "Purchase")); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(b.WebhooksTotal.WithLabelValues("forwarded", "Purchase")); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}
