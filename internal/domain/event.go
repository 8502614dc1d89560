package domain

import (
	"encoding/json"
	"time"

	"github.com/V4T54L/zid-tiktok-bridge/internal/pkg/fieldpath"
)

// InboundEvent is a storefront webhook notification as received, together
// with the request metadata the outbound record needs.
type InboundEvent struct {
	Payload    fieldpath.Object
	ClientIP   string
	UserAgent  string
	ReceivedAt time.Time
}

// ConversionRequest is the TikTok Events API request body. It always
// carries exactly one event.
type ConversionRequest struct {
	EventSource   string            `json:"event_source"`
	EventSourceID string            `json:"event_source_id"`
	TestEventCode string            `json:"test_event_code,omitempty"` // absent and null differ upstream
	Data          []ConversionEvent `json:"data"`
}

// ConversionEvent is a single entry of ConversionRequest.Data.
type ConversionEvent struct {
	Event      string               `json:"event"`
	EventTime  int64                `json:"event_time"`
	EventID    string               `json:"event_id"`
	User       ConversionUser       `json:"user"`
	Page       ConversionPage       `json:"page"`
	Properties ConversionProperties `json:"properties"`
}

// ConversionUser carries matching identifiers. Unknown values are sent as
// empty strings.
type ConversionUser struct {
	IP         string `json:"ip"`
	UserAgent  string `json:"user_agent"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	ExternalID string `json:"external_id"`
}

type ConversionPage struct {
	URL string `json:"url"`
}

type ConversionProperties struct {
	Currency string    `json:"currency"`
	Value    float64   `json:"value"`
	Contents []Content `json:"contents,omitempty"`
}

// Content is one order line item.
type Content struct {
	ContentID   string  `json:"content_id"`
	ContentName string  `json:"content_name"`
	ContentType string  `json:"content_type"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// ForwardResult is the upstream answer relayed back to the webhook caller.
// Body is always valid JSON.
type ForwardResult struct {
	StatusCode int
	Body       json.RawMessage
}

// SentSummary describes what was sent upstream without exposing contact
// identifiers.
type SentSummary struct {
	Event         string  `json:"event"`
	EventID       string  `json:"event_id"`
	EventSourceID string  `json:"event_source_id"`
	Value         float64 `json:"value"`
	Currency      string  `json:"currency"`
	TestEventCode string  `json:"test_event_code,omitempty"`
	Hashed        bool    `json:"hashed"`
	HasEmail      bool    `json:"has_email"`
	HasPhone      bool    `json:"has_phone"`
	ContentCount  int     `json:"content_count"`
}

// ForwardOutcome is the result of one translate-and-forward cycle.
type ForwardOutcome struct {
	Sent   SentSummary
	Result ForwardResult
}

// Summarize builds the SentSummary for req.
func Summarize(req ConversionRequest, hashed bool) SentSummary {
	s := SentSummary{
		EventSourceID: req.EventSourceID,
		TestEventCode: req.TestEventCode,
		Hashed:        hashed,
	}
	if len(req.Data) == 0 {
		return s
	}
	ev := req.Data[0]
	s.Event = ev.Event
	s.EventID = ev.EventID
	s.Value = ev.Properties.Value
	s.Currency = ev.Properties.Currency
	s.HasEmail = ev.User.Email != ""
	s.HasPhone = ev.User.Phone != ""
	s.ContentCount = len(ev.Properties.Contents)
	return s
}
