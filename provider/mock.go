package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a deterministic Translator for tests.
// Each page is returned prefixed with "[<target code>] " unless a response
// is registered for the target.
type MockProvider struct {
	Responses map[string]string // Target code to translated document
	Errors    map[string]error  // Target code to failure

	mu       sync.Mutex
	requests []TranslateRequest
}

// NewMockProvider creates a mock provider with no canned responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: map[string]string{},
		Errors:    map[string]error{},
	}
}

// Translate records req and returns the canned response for its target.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.Errors[req.Target.Code]; ok {
		return "", err
	}
	if out, ok := m.Responses[req.Target.Code]; ok {
		return out, nil
	}
	return fmt.Sprintf("[%s] %s", req.Target.Code, req.File.Content), nil
}

// Requests returns every request received so far.
func (m *MockProvider) Requests() []TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranslateRequest(nil), m.requests...)
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Reset forgets recorded requests.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

var _ Translator = (*MockProvider)(nil)
