package gemini

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/yildizm/rhea/internal/ai"
)

const (
	// ProviderName identifies the Gemini provider in the registry
	ProviderName = "gemini"

	DefaultModel = "gemini-3-flash-preview"
)

// DefaultKeyEnv lists the environment variables searched for the API key
var DefaultKeyEnv = []string{"GEMINI_API_KEY", "API_KEY"}

// Config holds Gemini provider configuration
type Config struct {
	// BaseURL overrides the generativelanguage endpoint; empty uses the SDK default
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is used when a request does not name one
	DefaultModel string `json:"default_model"`

	// Timeout bounds each call; zero leaves the caller's context alone
	Timeout time.Duration `json:"timeout,omitempty"`

	// Keys resolves the credential at call time
	Keys ai.KeySource `json:"-"`
}

// DefaultConfig returns a config that reads the key from DefaultKeyEnv
func DefaultConfig() *Config {
	return &Config{
		DefaultModel: DefaultModel,
		Keys:         EnvKeySource(DefaultKeyEnv...),
	}
}

// Validate validates the configuration. A missing credential is not a
// validation failure; it surfaces from Complete instead.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return ai.NewConfigurationError(ProviderName, "base_url", fmt.Sprintf("invalid base URL: %v", err))
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return ai.NewConfigurationError(ProviderName, "base_url", "base URL must use http or https")
		}
	}
	if c.DefaultModel == "" {
		return ai.NewConfigurationError(ProviderName, "default_model", "default model is required")
	}
	if c.Timeout < 0 {
		return ai.NewConfigurationError(ProviderName, "timeout", "timeout must be non-negative")
	}
	return nil
}

// FromProviderConfig converts a generic provider config
func FromProviderConfig(config *ai.ProviderConfig) *Config {
	c := DefaultConfig()
	if config == nil {
		return c
	}

	c.BaseURL = config.BaseURL
	c.Timeout = config.Timeout
	if len(config.KeyEnv) > 0 {
		c.Keys = EnvKeySource(config.KeyEnv...)
	}
	return c
}

// EnvKeySource returns a KeySource that reads the first non-empty variable
// among names each time it is called.
func EnvKeySource(names ...string) ai.KeySource {
	return func() (string, error) {
		for _, name := range names {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				return v, nil
			}
		}
		return "", ai.NewConfigurationError(ProviderName, "api_key",
			fmt.Sprintf("API key is not set (checked %s)", strings.Join(names, ", ")))
	}
}
