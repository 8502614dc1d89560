package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/metrics"
	"github.com/V4T54L/zid-tiktok-bridge/internal/domain"
	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/fieldpath"
)

// WebhookPath is where the storefront delivers its webhooks.
const WebhookPath = "/api/zid"

// EventForwarder is the part of the forward use case the handler needs.
type EventForwarder interface {
	Forward(ctx context.Context, in domain.InboundEvent) (*domain.ForwardOutcome, error)
}

type readyResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

type forwardResponse struct {
	OK         bool               `json:"ok"`
	Sent       domain.SentSummary `json:"sent"`
	TikTok     json.RawMessage    `json:"tiktok"`
	HTTPStatus int                `json:"http_status"`
}

// WebhookHandler serves the storefront webhook endpoint.
type WebhookHandler struct {
	useCase      EventForwarder
	logger       *slog.Logger
	maxEventSize int64
	metrics      *metrics.BridgeMetrics
}

// NewWebhookHandler creates a new WebhookHandler. m may be nil.
func NewWebhookHandler(uc EventForwarder, logger *slog.Logger, maxEventSize int64, m *metrics.BridgeMetrics) *WebhookHandler {
	return &WebhookHandler{
		useCase:      uc,
		logger:       logger,
		maxEventSize: maxEventSize,
		metrics:      m,
	}
}

// Ready answers GET requests so the storefront can verify the URL.
func (h *WebhookHandler) Ready(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, readyResponse{
		OK:      true,
		Message: "Zid webhook endpoint ready",
		Path:    WebhookPath,
	})
}

// Preflight answers CORS preflight requests. The CORS headers themselves
// are set by middleware.CORS.
func (h *WebhookHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Receive translates one webhook and forwards it. A body that is not a JSON
// object is treated as {}.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxEventSize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.count("error_size", "unknown")
			WriteError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		h.logger.Warn("failed to read webhook body, treating as empty", "error", err)
		body = nil
	}
	if h.metrics != nil {
		h.metrics.BytesTotal.Add(float64(len(body)))
	}

	payload, err := fieldpath.Decode(body)
	if err != nil {
		h.logger.Debug("webhook body is not a JSON object, using defaults", "error", err, "bytes", len(body))
		payload = fieldpath.Object{}
	}

	in := domain.InboundEvent{
		Payload:    payload,
		ClientIP:   clientIP(r),
		UserAgent:  r.UserAgent(),
		ReceivedAt: time.Now(),
	}

	out, err := h.useCase.Forward(r.Context(), in)
	if err != nil {
		h.count("error_forward", "unknown")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.count("forwarded", eventLabel(out.Sent.Event))
	WriteJSON(w, http.StatusOK, forwardResponse{
		OK:         true,
		Sent:       out.Sent,
		TikTok:     out.Result.Body,
		HTTPStatus: out.Result.StatusCode,
	})
}

func (h *WebhookHandler) count(status, event string) {
	if h.metrics != nil {
		h.metrics.WebhooksTotal.WithLabelValues(status, event).Inc()
	}
}

// knownEvents bounds the event label; anything else is counted as "other".
var knownEvents = map[string]struct{}{
	"Purchase": {}, "InitiateCheckout": {}, "AddToCart": {}, "CompleteRegistration": {},
	"CompletePayment": {}, "PlaceAnOrder": {}, "AddPaymentInfo": {}, "ViewContent": {},
	"Contact": {}, "Subscribe": {}, "CustomEvent": {},
}

func eventLabel(event string) string {
	if _, ok := knownEvents[event]; ok {
		return event
	}
	return "other"
}

// clientIP returns the first X-Forwarded-For hop, then X-Real-IP, else "".
// The TCP peer is the storefront's webhook sender, not the shopper.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}
