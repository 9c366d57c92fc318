package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider returns a fixed response for every request. Useful for
// tests and offline development.
type MockProvider struct {
	response string
	err      error

	mu       sync.Mutex
	requests []CompletionRequest
}

// NewMockProvider creates a provider that always answers with response.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{response: response}
}

// NewFailingProvider creates a provider that always fails with err.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{err: err}
}

// Name returns the provider name.
func (p *MockProvider) Name() string {
	return "mock"
}

// Complete implements the Provider interface.
func (p *MockProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return CompletionResponse{}, err
	}

	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if p.err != nil {
		return CompletionResponse{}, p.err
	}
	return CompletionResponse{
		Model:   "mock",
		Message: Message{Role: "assistant", Content: p.response},
	}, nil
}

// Requests returns a copy of every request received.
func (p *MockProvider) Requests() []CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]CompletionRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// ScriptedProvider replays a fixed sequence of responses, one per
// request. Useful for testing multi-turn negotiations.
type ScriptedProvider struct {
	mu        sync.Mutex
	responses []string
	requests  []CompletionRequest
	next      int
}

// NewScriptedProvider creates a provider that replays responses in order.
func NewScriptedProvider(responses ...string) *ScriptedProvider {
	return &ScriptedProvider{responses: responses}
}

// Name returns the provider name.
func (p *ScriptedProvider) Name() string {
	return "scripted"
}

// Complete implements the Provider interface.
func (p *ScriptedProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return CompletionResponse{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)
	if p.next >= len(p.responses) {
		return CompletionResponse{}, fmt.Errorf("script exhausted after %d responses", len(p.responses))
	}
	response := p.responses[p.next]
	p.next++

	return CompletionResponse{
		Model:   "scripted",
		Message: Message{Role: "assistant", Content: response},
	}, nil
}

// Requests returns a copy of every request received.
func (p *ScriptedProvider) Requests() []CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]CompletionRequest, len(p.requests))
	copy(out, p.requests)
	return out
}
