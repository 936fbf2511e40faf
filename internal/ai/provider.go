package ai

import (
	"context"
)

// Provider defines the interface for generative-text endpoints
type Provider interface {
	// Name returns the provider name (e.g., "gemini")
	Name() string

	// Complete sends one prompt and waits for the full response text
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	// Close cleans up provider resources
	Close() error
}

// KeySource resolves the API credential at call time
type KeySource func() (string, error)

// StaticKey returns a KeySource that always yields key
func StaticKey(key string) KeySource {
	return func() (string, error) {
		return key, nil
	}
}
