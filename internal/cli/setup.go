package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/yildizm/rhea/internal/ai"
	"github.com/yildizm/rhea/internal/ai/providers/gemini"
	"github.com/yildizm/rhea/internal/config"
	"github.com/yildizm/rhea/internal/logger"
)

// newRegistry returns a registry holding every built-in provider
func newRegistry() (*ai.Registry, error) {
	registry := ai.NewRegistry()
	if err := gemini.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register gemini provider: %w", err)
	}
	return registry, nil
}

// createProvider builds the configured provider. A missing API key is not an
// error here; it surfaces on the first dispatch.
func createProvider(cfg *config.AIConfig) (ai.Provider, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, err
	}

	providerConfig := &ai.ProviderConfig{
		Name:    cfg.Provider,
		BaseURL: cfg.Endpoint,
		KeyEnv:  cfg.APIKeyEnv,
		Timeout: cfg.Timeout,
	}

	factory, ok := registry.Get(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("unsupported AI provider: %s (available: %s)",
			cfg.Provider, strings.Join(registry.List(), ", "))
	}
	if err := factory.ValidateConfig(providerConfig); err != nil {
		return nil, fmt.Errorf("invalid %s configuration: %w", cfg.Provider, err)
	}

	return registry.Create(cfg.Provider, providerConfig)
}

// credentialSource names the first variable in names that holds a key
func credentialSource(names []string) string {
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) != "" {
			return name
		}
	}
	return ""
}

// newStderrLogger logs for one-shot commands
func newStderrLogger(opts *globalOptions) *logger.Logger {
	return logger.New("rhea", opts)
}

// newFileLogger logs while the console owns the terminal. It falls back to a
// discarding logger when the file cannot be opened.
func newFileLogger(opts *globalOptions, cfg *config.Config) *logger.Logger {
	log, err := logger.NewFile("rhea", cfg.LogFile(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; diagnostics disabled\n", err)
		return logger.Nop()
	}
	return log
}

func closeProvider(provider ai.Provider, log *logger.Logger) {
	if err := provider.Close(); err != nil {
		log.Warn("failed to close provider: %v", err)
	}
}
