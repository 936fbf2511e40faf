package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.rhea.yaml",               // Project-specific config (highest priority)
	"~/.config/rhea/config.yaml", // User config
	"/etc/rhea/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	loaded      []string
	warn        func(format string, args ...interface{})
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// NewLoaderWithPaths creates a loader searching paths instead of ConfigPaths
func NewLoaderWithPaths(paths ...string) *Loader {
	l := NewLoader()
	l.configPaths = paths
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. RHEA_* environment variables
// 3. ./.rhea.yaml
// 4. ~/.config/rhea/config.yaml
// 5. /etc/rhea/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()
	l.loaded = nil

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn("failed to load config from %s: %v", expandedPath, err)
			}
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadedFiles returns the files merged by the last LoadConfig call
func (l *Loader) LoadedFiles() []string {
	out := make([]string, len(l.loaded))
	copy(out, l.loaded)
	return out
}

// loadFromFile decodes a YAML file over config. Keys absent from the file
// keep their current value. A file that fails to parse leaves config as is.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	next := *config
	next.Profiles = config.Profiles.clone()
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*config = next

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	l.loaded = append(l.loaded, path)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"RHEA_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"RHEA_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"RHEA_AI_API_KEY_ENV": func(v string) error { config.AI.APIKeyEnv = splitList(v); return nil },
		"RHEA_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },

		// Profiles
		"RHEA_PROFILES_REASONING_MODEL":       func(v string) error { config.Profiles.Reasoning.Model = v; return nil },
		"RHEA_PROFILES_REASONING_TEMPERATURE": func(v string) error { return parseFloat(v, &config.Profiles.Reasoning.Temperature) },
		"RHEA_PROFILES_CODE_MODEL":            func(v string) error { config.Profiles.Code.Model = v; return nil },
		"RHEA_PROFILES_CODE_TEMPERATURE":      func(v string) error { return parseFloat(v, &config.Profiles.Code.Temperature) },
		"RHEA_PROFILES_SECURITY_MODEL":        func(v string) error { config.Profiles.Security.Model = v; return nil },
		"RHEA_PROFILES_SECURITY_TEMPERATURE":  func(v string) error { return parseFloat(v, &config.Profiles.Security.Temperature) },

		// Console Config
		"RHEA_CONSOLE_THEME":          func(v string) error { config.Console.Theme = v; return nil },
		"RHEA_CONSOLE_GAUGE_INTERVAL": func(v string) error { return parseDuration(v, &config.Console.GaugeInterval) },
		"RHEA_CONSOLE_BOOT_LINES":     func(v string) error { return parseBool(v, &config.Console.BootLines) },

		// Output Config
		"RHEA_OUTPUT_COLOR_MODE": func(v string) error { config.Output.ColorMode = v; return nil },
		"RHEA_OUTPUT_NO_EMOJI":   func(v string) error { return parseBool(v, &config.Output.NoEmoji) },

		// Logging Config
		"RHEA_LOGGING_FILE":    func(v string) error { config.Logging.File = v; return nil },
		"RHEA_LOGGING_VERBOSE": func(v string) error { return parseBool(v, &config.Logging.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Marshal renders config as YAML
func Marshal(config *Config) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Type conversion helpers

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
