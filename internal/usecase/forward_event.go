package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/pii"
	"github.com/V4T54L/zid-tiktok-bridge/internal/domain"
)

const generatedEventIDPrefix = "zid"

// ForwardOptions are the deployment settings that shape the outbound record.
type ForwardOptions struct {
	PixelID         string
	EventSource     string
	StoreURL        string
	DefaultCurrency string
	InferEventNames bool
}

// ForwardEventUseCase translates storefront webhooks into conversion
// requests and forwards them.
type ForwardEventUseCase struct {
	forwarder domain.ConversionForwarder
	hasher    *pii.Hasher
	logger    *slog.Logger
	opts      ForwardOptions
	now       func() time.Time
}

// NewForwardEventUseCase creates a new ForwardEventUseCase.
func NewForwardEventUseCase(forwarder domain.ConversionForwarder, hasher *pii.Hasher, logger *slog.Logger, opts ForwardOptions) *ForwardEventUseCase {
	if opts.EventSource == "" {
		opts.EventSource = "web"
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "SAR"
	}
	return &ForwardEventUseCase{
		forwarder: forwarder,
		hasher:    hasher,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// Forward translates the event, sends it once and returns what was sent
// together with the upstream answer. Upstream error statuses are not
// errors; only a failed call is.
func (uc *ForwardEventUseCase) Forward(ctx context.Context, in domain.InboundEvent) (*domain.ForwardOutcome, error) {
	req := uc.Translate(in)
	sent := domain.Summarize(req, uc.hasher.Enabled())

	res, err := uc.forwarder.Forward(ctx, req)
	if err != nil {
		uc.logger.Error("failed to forward conversion event", "error", err, "event", sent.Event, "event_id", sent.EventID)
		return nil, fmt.Errorf("forward %s event %s: %w", sent.Event, sent.EventID, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		uc.logger.Warn("events API rejected conversion event", "status", res.StatusCode, "event", sent.Event, "event_id", sent.EventID)
	} else {
		uc.logger.Info("forwarded conversion event", "status", res.StatusCode, "event", sent.Event, "event_id", sent.EventID, "test", sent.TestEventCode != "")
	}

	return &domain.ForwardOutcome{Sent: sent, Result: *res}, nil
}

// Translate builds the outbound record for in. It does no I/O.
func (uc *ForwardEventUseCase) Translate(in domain.InboundEvent) domain.ConversionRequest {
	p := in.Payload

	at := in.ReceivedAt
	if at.IsZero() {
		at = uc.now()
	}

	eventID, ok := p.String("event_id")
	if !ok {
		eventID = newEventID(at)
	}

	value, _ := p.Lookup("value")
	currency, _ := p.Lookup("currency")
	testEventCode, _ := p.String("test_event_code")

	pageURL, ok := p.String("page.url", "url")
	if !ok {
		pageURL = uc.opts.StoreURL
	}

	return domain.ConversionRequest{
		EventSource:   uc.opts.EventSource,
		EventSourceID: uc.opts.PixelID,
		TestEventCode: testEventCode,
		Data: []domain.ConversionEvent{{
			Event:     uc.eventName(in),
			EventTime: at.Unix(),
			EventID:   eventID,
			User:      uc.user(in),
			Page:      domain.ConversionPage{URL: pageURL},
			Properties: domain.ConversionProperties{
				Currency: NormalizeCurrency(currency, uc.opts.DefaultCurrency),
				Value:    ToNumber(value),
				Contents: BuildContents(p),
			},
		}},
	}
}

func (uc *ForwardEventUseCase) eventName(in domain.InboundEvent) string {
	if uc.opts.InferEventNames {
		raw, _ := in.Payload.String(storefrontEventPaths...)
		return MapStorefrontEvent(raw)
	}
	if name, ok := in.Payload.String("event"); ok {
		return name
	}
	return EventPurchase
}

func (uc *ForwardEventUseCase) user(in domain.InboundEvent) domain.ConversionUser {
	p := in.Payload
	u := domain.ConversionUser{
		IP:        in.ClientIP,
		UserAgent: in.UserAgent,
	}

	if ip, ok := p.String("user.ip"); ok {
		u.IP = ip
	}
	if ua, ok := p.String("user.user_agent"); ok {
		u.UserAgent = ua
	}

	// Plaintext takes precedence over caller supplied digests.
	if email, ok := p.String("user.email"); ok {
		u.Email = uc.hasher.Email(email)
	} else if digest, ok := p.String("user.email_hashed"); ok {
		u.Email = uc.hasher.EmailDigest(digest)
	}

	if phone, ok := p.String("user.phone"); ok {
		u.Phone = uc.hasher.Phone(phone)
	} else if digest, ok := p.String("user.mobile_hashed", "user.phone_hashed"); ok {
		u.Phone = uc.hasher.PhoneDigest(digest)
	}

	u.ExternalID, _ = p.String("user.external_id")
	return u
}

// newEventID combines a prefix, the receive time and a random suffix.
// It is unique per request but not stable across retries.
func newEventID(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return generatedEventIDPrefix + "_" + strconv.FormatInt(at.UnixMilli(), 10) + "_" + suffix
}
