package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/metrics"
	"github.com/V4T54L/zid-tiktok-bridge/internal/domain"
)

const (
	accessTokenHeader = "Access-Token"
	maxResponseBytes  = 1 << 20
)

// ErrEncode is returned when the conversion request cannot be serialized.
var ErrEncode = errors.New("tiktok: failed to encode conversion request")

var emptyObject = json.RawMessage(`{}`)

// Client implements domain.ConversionForwarder against the TikTok Events API.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
	logger      *slog.Logger
	metrics     *metrics.BridgeMetrics
}

// NewClient creates a Client. m may be nil.
func NewClient(httpClient *http.Client, endpoint, accessToken string, logger *slog.Logger, m *metrics.BridgeMetrics) *Client {
	return &Client{
		httpClient:  httpClient,
		endpoint:    endpoint,
		accessToken: accessToken,
		logger:      logger.With("component", "tiktok_client"),
		metrics:     m,
	}
}

// NewHTTPClient returns an http.Client tuned for a single upstream host.
// A zero timeout means no client-side deadline.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// Forward posts req once. The upstream body is relayed as-is when it is
// valid JSON and replaced by {} otherwise.
func (c *Client) Forward(ctx context.Context, req domain.ConversionRequest) (*domain.ForwardResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build events API request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(accessTokenHeader, c.accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.metrics != nil {
		c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamResponses.WithLabelValues("transport_error").Inc()
		}
		return nil, fmt.Errorf("events API request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.UpstreamResponses.WithLabelValues(metrics.StatusClass(resp.StatusCode)).Inc()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Warn("failed to read events API response body", "error", err, "status", resp.StatusCode)
		body = nil
	}

	return &domain.ForwardResult{
		StatusCode: resp.StatusCode,
		Body:       relayBody(body),
	}, nil
}

func relayBody(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return emptyObject
	}
	return json.RawMessage(body)
}
