package gemini

import (
	"github.com/yildizm/rhea/internal/ai"
)

// Factory creates Gemini provider instances
type Factory struct{}

// NewFactory creates a new Gemini factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a new Gemini provider
func (f *Factory) Create(config *ai.ProviderConfig) (ai.Provider, error) {
	return New(FromProviderConfig(config))
}

// Type returns the provider type
func (f *Factory) Type() string {
	return ProviderName
}

// ValidateConfig validates the provider configuration
func (f *Factory) ValidateConfig(config *ai.ProviderConfig) error {
	if config == nil {
		return ai.NewConfigurationError(ProviderName, "config", "configuration is required")
	}
	return FromProviderConfig(config).Validate()
}

// DefaultConfig returns default configuration
func (f *Factory) DefaultConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:   ProviderName,
		KeyEnv: DefaultKeyEnv,
	}
}

// Register adds the Gemini factory to registry
func Register(registry *ai.Registry) error {
	return registry.Register(ProviderName, NewFactory())
}
