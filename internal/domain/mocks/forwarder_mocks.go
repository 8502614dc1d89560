package mocks

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/V4T54L/zid-tiktok-bridge/internal/domain"
)

// MockForwarder is a mock implementation of domain.ConversionForwarder for testing.
type MockForwarder struct {
	mu         sync.Mutex
	Requests   []domain.ConversionRequest
	StatusCode int
	Body       json.RawMessage
	ForwardErr error
}

func (m *MockForwarder) Forward(ctx context.Context, req domain.ConversionRequest) (*domain.ForwardResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.ForwardErr != nil {
		return nil, m.ForwardErr
	}

	status := m.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	body := m.Body
	if len(body) == 0 {
		body = json.RawMessage(`{"code":0,"message":"OK"}`)
	}
	return &domain.ForwardResult{StatusCode: status, Body: body}, nil
}

// Last returns the most recently forwarded request.
func (m *MockForwarder) Last() (domain.ConversionRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return domain.ConversionRequest{}, false
	}
	return m.Requests[len(m.Requests)-1], true
}
