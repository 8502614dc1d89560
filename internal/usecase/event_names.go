package usecase

import "strings"

// TikTok standard event names produced by this service.
const (
	EventPurchase             = "Purchase"
	EventInitiateCheckout     = "InitiateCheckout"
	EventAddToCart            = "AddToCart"
	EventCompleteRegistration = "CompleteRegistration"
	EventCustom               = "CustomEvent"
)

// storefrontEventPaths are where Zid and GTM payloads put the raw event name.
var storefrontEventPaths = []string{"event", "event_name", "type", "name", "meta.event", "meta.event_name"}

// MapStorefrontEvent infers a TikTok event from a free-text storefront
// event name. Rules are checked in order and the first match wins.
func MapStorefrontEvent(name string) string {
	e := strings.ToLower(strings.TrimSpace(name))

	switch {
	case strings.Contains(e, "payment_status"), strings.Contains(e, "paid"), strings.Contains(e, "purchase"):
		return EventPurchase
	case strings.Contains(e, "order.create"):
		return EventInitiateCheckout
	case strings.Contains(e, "abandoned_cart"):
		return EventAddToCart
	case strings.Contains(e, "register"):
		return EventCompleteRegistration
	default:
		return EventCustom
	}
}
