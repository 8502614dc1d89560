package domain

import "context"

// ConversionForwarder delivers a conversion request to the advertising API.
// This abstracts away the concrete HTTP client.
type ConversionForwarder interface {
	// Forward sends req once and returns the upstream status and body.
	// A non-2xx status is a result, not an error; errors are reserved for
	// transport and encoding failures.
	Forward(ctx context.Context, req ConversionRequest) (*ForwardResult, error)
}
