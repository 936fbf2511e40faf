package ai

import (
	"sort"
	"sync"
)

// ProviderFactory creates provider instances
type ProviderFactory interface {
	// Create creates a new provider instance with the given config
	Create(config *ProviderConfig) (Provider, error)

	// Type returns the provider type this factory creates
	Type() string

	// ValidateConfig validates configuration for this provider type
	ValidateConfig(config *ProviderConfig) error

	// DefaultConfig returns a default configuration
	DefaultConfig() *ProviderConfig
}

// Registry manages available provider factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory to the registry
func (r *Registry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &ProviderError{
			Type:     ErrTypeRegistration,
			Message:  "provider already registered",
			Provider: name,
		}
	}

	r.factories[name] = factory
	return nil
}

// Unregister removes a provider factory from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
}

// Create builds a provider by name. A nil config uses the factory defaults.
func (r *Registry) Create(name string, config *ProviderConfig) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &ProviderError{
			Type:     ErrTypeNotFound,
			Message:  "provider not registered",
			Provider: name,
		}
	}

	if config == nil {
		config = factory.DefaultConfig()
	}

	if err := factory.ValidateConfig(config); err != nil {
		return nil, err
	}

	return factory.Create(config)
}

// List returns all registered provider names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a provider is registered
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// Get returns the factory registered under name
func (r *Registry) Get(name string) (ProviderFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	return factory, exists
}
