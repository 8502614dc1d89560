package usecase

import "testing"

func TestMapStorefrontEvent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "order.payment_status.update", want: EventPurchase},
		{input: "order.paid", want: EventPurchase},
		{input: "Purchase", want: EventPurchase},
		{input: "order.create", want: EventInitiateCheckout},
		{input: "ORDER.CREATE", want: EventInitiateCheckout},
		{input: "abandoned_cart.created", want: EventAddToCart},
		{input: "customer.register", want: EventCompleteRegistration},
		{input: "newsletter.register", want: EventCompleteRegistration},
		{input: "product.update", want: EventCustom},
		{input: "", want: EventCustom},
		// First rule wins even when a later one also matches.
		{input: "order.create.paid", want: EventPurchase},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MapStorefrontEvent(tt.input); got != tt.want {
				t.Errorf("MapStorefrontEvent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
