package console

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/yildizm/rhea/internal/ai"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubProvider answers through fn and records every request
type stubProvider struct {
	mu       sync.Mutex
	fn       func(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error)
	requests []*ai.CompletionRequest
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	return p.fn(ctx, req)
}

func (p *stubProvider) ValidateConfig() error { return nil }

func (p *stubProvider) Close() error { return nil }

func (p *stubProvider) Requests() []*ai.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*ai.CompletionRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

func replying(text string) *stubProvider {
	return &stubProvider{fn: func(context.Context, *ai.CompletionRequest) (*ai.CompletionResponse, error) {
		return &ai.CompletionResponse{Content: text}, nil
	}}
}

func failing(err error) *stubProvider {
	return &stubProvider{fn: func(context.Context, *ai.CompletionRequest) (*ai.CompletionResponse, error) {
		return nil, err
	}}
}
