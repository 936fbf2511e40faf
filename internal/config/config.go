package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/yildizm/rhea/internal/console"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	AI       AIConfig       `yaml:"ai" json:"ai"`
	Profiles ProfilesConfig `yaml:"profiles" json:"profiles"`
	Console  ConsoleConfig  `yaml:"console" json:"console"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// AIConfig configures the generative-language provider. The key itself is
// never stored; only the names of the variables that hold it.
type AIConfig struct {
	Provider  string        `yaml:"provider" json:"provider"`       // gemini
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`       // base URL override
	APIKeyEnv []string      `yaml:"api_key_env" json:"api_key_env"` // searched in order
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`         // 0 means none
}

// ProfileConfig overrides one request profile. An omitted or null optional
// parameter leaves the model default; an explicit 0 is sent.
type ProfileConfig struct {
	Model          string   `yaml:"model" json:"model"`
	Temperature    float64  `yaml:"temperature" json:"temperature"`
	TopP           *float64 `yaml:"top_p,omitempty" json:"top_p,omitempty"`
	TopK           *int     `yaml:"top_k,omitempty" json:"top_k,omitempty"`
	ThinkingBudget *int     `yaml:"thinking_budget,omitempty" json:"thinking_budget,omitempty"`
}

// clone copies p so later decoding cannot write through shared pointers
func (p ProfileConfig) clone() ProfileConfig {
	p.TopP = clonePtr(p.TopP)
	p.TopK = clonePtr(p.TopK)
	p.ThinkingBudget = clonePtr(p.ThinkingBudget)
	return p
}

// ProfilesConfig holds the three request profiles
type ProfilesConfig struct {
	Reasoning ProfileConfig `yaml:"reasoning" json:"reasoning"`
	Code      ProfileConfig `yaml:"code" json:"code"`
	Security  ProfileConfig `yaml:"security" json:"security"`
}

func (p ProfilesConfig) clone() ProfilesConfig {
	return ProfilesConfig{
		Reasoning: p.Reasoning.clone(),
		Code:      p.Code.clone(),
		Security:  p.Security.clone(),
	}
}

// ConsoleConfig configures the dashboard
type ConsoleConfig struct {
	Theme         string        `yaml:"theme" json:"theme"`                   // emerald|high-contrast|minimal
	GaugeInterval time.Duration `yaml:"gauge_interval" json:"gauge_interval"` // neural load tick
	BootLines     bool          `yaml:"boot_lines" json:"boot_lines"`         // seed the log
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	ColorMode string `yaml:"color_mode" json:"color_mode"` // auto|always|never
	NoEmoji   bool   `yaml:"no_emoji" json:"no_emoji"`
}

// LoggingConfig configures diagnostic logging
type LoggingConfig struct {
	File    string `yaml:"file" json:"file"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

var (
	validProviders  = []string{"gemini"}
	validThemes     = []string{"emerald", "high-contrast", "minimal"}
	validColorModes = []string{"auto", "always", "never"}
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	defaults := console.DefaultProfiles()
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider:  "gemini",
			Endpoint:  "",
			APIKeyEnv: []string{"GEMINI_API_KEY", "API_KEY"},
			Timeout:   0,
		},
		Profiles: ProfilesConfig{
			Reasoning: profileConfigFrom(defaults.Reasoning),
			Code:      profileConfigFrom(defaults.Code),
			Security:  profileConfigFrom(defaults.Security),
		},
		Console: ConsoleConfig{
			Theme:         "emerald",
			GaugeInterval: 3 * time.Second,
			BootLines:     true,
		},
		Output: OutputConfig{
			ColorMode: "auto",
			NoEmoji:   false,
		},
		Logging: LoggingConfig{
			File:    "~/.cache/rhea/rhea.log",
			Verbose: false,
		},
	}
}

func profileConfigFrom(p console.Profile) ProfileConfig {
	return ProfileConfig{
		Model:          p.Model,
		Temperature:    p.Temperature,
		TopP:           clonePtr(p.TopP),
		TopK:           clonePtr(p.TopK),
		ThinkingBudget: clonePtr(p.ThinkingBudget),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ProfileSet applies the configured overrides to the built-in profiles.
// Personas and prompt templates are fixed.
func (c *Config) ProfileSet() console.ProfileSet {
	set := console.DefaultProfiles()
	apply := func(dst *console.Profile, src ProfileConfig) {
		dst.Model = src.Model
		dst.Temperature = src.Temperature
		dst.TopP = clonePtr(src.TopP)
		dst.TopK = clonePtr(src.TopK)
		dst.ThinkingBudget = clonePtr(src.ThinkingBudget)
	}
	apply(&set.Reasoning, c.Profiles.Reasoning)
	apply(&set.Code, c.Profiles.Code)
	apply(&set.Security, c.Profiles.Security)
	return set
}

// LogFile returns the diagnostic log path with ~ expanded
func (c *Config) LogFile() string {
	return expandPath(c.Logging.File)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateProfiles(); err != nil {
		return err
	}
	if err := c.validateConsoleConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	if !slices.Contains(validProviders, c.AI.Provider) {
		return fmt.Errorf("invalid AI provider: %s (must be one of: %s)", c.AI.Provider, strings.Join(validProviders, ", "))
	}
	if c.AI.Endpoint != "" {
		u, err := url.Parse(c.AI.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid AI endpoint: %s (must be an http or https URL)", c.AI.Endpoint)
		}
	}
	if len(c.AI.APIKeyEnv) == 0 {
		return fmt.Errorf("api_key_env must name at least one environment variable")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

// validateProfiles validates the request profiles
func (c *Config) validateProfiles() error {
	profiles := []struct {
		name string
		p    ProfileConfig
	}{
		{"reasoning", c.Profiles.Reasoning},
		{"code", c.Profiles.Code},
		{"security", c.Profiles.Security},
	}
	for _, entry := range profiles {
		p := entry.p
		switch {
		case p.Model == "":
			return fmt.Errorf("profiles.%s.model is required", entry.name)
		case p.Temperature < 0 || p.Temperature > 2:
			return fmt.Errorf("profiles.%s.temperature must be between 0 and 2", entry.name)
		case p.TopP != nil && (*p.TopP < 0 || *p.TopP > 1):
			return fmt.Errorf("profiles.%s.top_p must be between 0 and 1", entry.name)
		case p.TopK != nil && *p.TopK < 0:
			return fmt.Errorf("profiles.%s.top_k must be non-negative", entry.name)
		case p.ThinkingBudget != nil && *p.ThinkingBudget < 0:
			return fmt.Errorf("profiles.%s.thinking_budget must be non-negative", entry.name)
		}
	}
	return nil
}

// validateConsoleConfig validates dashboard configuration
func (c *Config) validateConsoleConfig() error {
	if !slices.Contains(validThemes, c.Console.Theme) {
		return fmt.Errorf("invalid theme: %s (must be one of: %s)", c.Console.Theme, strings.Join(validThemes, ", "))
	}
	if c.Console.GaugeInterval <= 0 {
		return fmt.Errorf("gauge_interval must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.ColorMode != "" && !slices.Contains(validColorModes, c.Output.ColorMode) {
		return fmt.Errorf("invalid color mode: %s (must be one of: %s)", c.Output.ColorMode, strings.Join(validColorModes, ", "))
	}
	return nil
}

// Themes returns the accepted theme names
func Themes() []string {
	return slices.Clone(validThemes)
}
