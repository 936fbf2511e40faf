package ai

import (
	"context"
	"errors"
	"testing"
)

type nopProvider struct {
	config *ProviderConfig
}

func (p *nopProvider) Name() string { return "nop" }

func (p *nopProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{Content: req.Prompt}, nil
}

func (p *nopProvider) ValidateConfig() error { return nil }

func (p *nopProvider) Close() error { return nil }

type nopFactory struct {
	rejectAll bool
}

func (f *nopFactory) Create(config *ProviderConfig) (Provider, error) {
	return &nopProvider{config: config}, nil
}

func (f *nopFactory) Type() string { return "nop" }

func (f *nopFactory) ValidateConfig(config *ProviderConfig) error {
	if f.rejectAll {
		return NewConfigurationError("nop", "config", "rejected")
	}
	return nil
}

func (f *nopFactory) DefaultConfig() *ProviderConfig {
	return &ProviderConfig{Name: "nop"}
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register("nop", &nopFactory{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err := registry.Register("nop", &nopFactory{})
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Type != ErrTypeRegistration {
		t.Fatalf("expected registration error on duplicate, got %v", err)
	}

	provider, err := registry.Create("nop", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := provider.(*nopProvider).config.Name; got != "nop" {
		t.Errorf("expected default config to be used, got name %q", got)
	}

	if !registry.IsRegistered("nop") {
		t.Error("expected nop to be registered")
	}
	if factory, ok := registry.Get("nop"); !ok || factory.Type() != "nop" {
		t.Errorf("Get() = %v, %v", factory, ok)
	}
	if names := registry.List(); len(names) != 1 || names[0] != "nop" {
		t.Errorf("List() = %v", names)
	}

	registry.Unregister("nop")
	if registry.IsRegistered("nop") {
		t.Error("expected nop to be unregistered")
	}
}

func TestRegistry_CreateErrors(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Create("missing", nil)
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Type != ErrTypeNotFound {
		t.Errorf("expected not_found error, got %v", err)
	}

	if err := registry.Register("strict", &nopFactory{rejectAll: true}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := registry.Create("strict", &ProviderConfig{}); !IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
