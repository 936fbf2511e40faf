package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/rhea/internal/console"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigExplicitZeroSampling(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "zero.yaml", `profiles:
  code:
    temperature: 0
    top_p: 0
    thinking_budget: 0
`)

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	req := cfg.ProfileSet().Code.Request("build api", console.Builder)
	if req.Temperature == nil || *req.Temperature != 0 {
		t.Errorf("Expected temperature 0 to be sent, got %v", req.Temperature)
	}
	if req.TopP == nil || *req.TopP != 0 {
		t.Errorf("Expected top_p 0 to be sent, got %v", req.TopP)
	}
	if req.ThinkingBudget == nil || *req.ThinkingBudget != 0 {
		t.Errorf("Expected thinking budget 0 to be sent, got %v", req.ThinkingBudget)
	}
	if req.TopK != nil {
		t.Errorf("Expected top_k to stay unset, got %v", *req.TopK)
	}

	// Decoding must not write through to the built-in defaults
	if b := DefaultConfig().Profiles.Reasoning.ThinkingBudget; b == nil || *b != 2000 {
		t.Errorf("Expected default thinking budget 2000, got %v", b)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoaderWithPaths(filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected default AI provider gemini, got %s", cfg.AI.Provider)
	}
	if len(loader.LoadedFiles()) != 0 {
		t.Errorf("Expected no loaded files, got %v", loader.LoadedFiles())
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `ai:
  endpoint: "http://localhost:9999"
  timeout: 45s
profiles:
  code:
    model: "gemini-custom"
console:
  theme: minimal
  boot_lines: false
`)

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.AI.Endpoint != "http://localhost:9999" {
		t.Errorf("Expected endpoint override, got %s", cfg.AI.Endpoint)
	}
	if cfg.AI.Timeout != 45*time.Second {
		t.Errorf("Expected AI timeout 45s, got %v", cfg.AI.Timeout)
	}
	if cfg.Profiles.Code.Model != "gemini-custom" {
		t.Errorf("Expected code model gemini-custom, got %s", cfg.Profiles.Code.Model)
	}
	// Keys absent from the file keep their defaults
	if cfg.Profiles.Code.Temperature != 0.2 {
		t.Errorf("Expected code temperature 0.2, got %v", cfg.Profiles.Code.Temperature)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected provider gemini, got %s", cfg.AI.Provider)
	}
	if cfg.Console.Theme != "minimal" || cfg.Console.BootLines {
		t.Errorf("Unexpected console config %+v", cfg.Console)
	}
	if cfg.Console.GaugeInterval != 3*time.Second {
		t.Errorf("Expected gauge interval default, got %v", cfg.Console.GaugeInterval)
	}
	if files := loader.LoadedFiles(); len(files) != 1 {
		t.Errorf("Expected 1 loaded file, got %v", files)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	system := writeConfig(t, dir, "system.yaml", "console:\n  theme: minimal\n  gauge_interval: 5s\n")
	project := writeConfig(t, dir, "project.yaml", "console:\n  theme: high-contrast\n")

	// Highest priority first, as in ConfigPaths
	loader := NewLoaderWithPaths(project, system)
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Console.Theme != "high-contrast" {
		t.Errorf("Expected project theme to win, got %s", cfg.Console.Theme)
	}
	if cfg.Console.GaugeInterval != 5*time.Second {
		t.Errorf("Expected system gauge interval to survive, got %v", cfg.Console.GaugeInterval)
	}
	if len(loader.LoadedFiles()) != 2 {
		t.Errorf("Expected 2 loaded files, got %v", loader.LoadedFiles())
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "invalid.yaml", "ai:\n  provider: [unclosed\n")

	if _, err := NewLoader().LoadConfig(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "bad.yaml", "console:\n  theme: neon\n")

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "invalid theme") {
		t.Errorf("Expected theme validation error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RHEA_AI_ENDPOINT", "https://proxy.internal")
	t.Setenv("RHEA_AI_API_KEY_ENV", "MY_KEY, OTHER_KEY")
	t.Setenv("RHEA_AI_TIMEOUT", "20s")
	t.Setenv("RHEA_PROFILES_SECURITY_MODEL", "audit-model")
	t.Setenv("RHEA_PROFILES_REASONING_TEMPERATURE", "1.1")
	t.Setenv("RHEA_CONSOLE_BOOT_LINES", "false")
	t.Setenv("RHEA_OUTPUT_NO_EMOJI", "true")
	t.Setenv("RHEA_LOGGING_VERBOSE", "true")

	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.AI.Endpoint != "https://proxy.internal" {
		t.Errorf("Expected endpoint override, got %s", cfg.AI.Endpoint)
	}
	if len(cfg.AI.APIKeyEnv) != 2 || cfg.AI.APIKeyEnv[1] != "OTHER_KEY" {
		t.Errorf("Expected trimmed key env list, got %v", cfg.AI.APIKeyEnv)
	}
	if cfg.AI.Timeout != 20*time.Second {
		t.Errorf("Expected timeout 20s, got %v", cfg.AI.Timeout)
	}
	if cfg.Profiles.Security.Model != "audit-model" {
		t.Errorf("Expected security model override, got %s", cfg.Profiles.Security.Model)
	}
	if cfg.Profiles.Reasoning.Temperature != 1.1 {
		t.Errorf("Expected reasoning temperature 1.1, got %v", cfg.Profiles.Reasoning.Temperature)
	}
	if cfg.Console.BootLines {
		t.Error("Expected boot lines disabled")
	}
	if !cfg.Output.NoEmoji || !cfg.Logging.Verbose {
		t.Error("Expected no_emoji and verbose enabled")
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid float", "RHEA_PROFILES_CODE_TEMPERATURE", "hot"},
		{"invalid bool", "RHEA_OUTPUT_NO_EMOJI", "not-a-bool"},
		{"invalid duration", "RHEA_AI_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if err := applyEnvOverrides(DefaultConfig()); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestEnvOverridesFailValidation(t *testing.T) {
	t.Setenv("RHEA_AI_PROVIDER", "openai")

	loader := NewLoaderWithPaths(filepath.Join(t.TempDir(), "none.yaml"))
	if _, err := loader.LoadConfig(""); err == nil {
		t.Error("Expected unknown provider to fail validation")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid yaml file",
			path:    "config.yaml",
			wantErr: false,
		},
		{
			name:    "valid yml file",
			path:    "config.yml",
			wantErr: false,
		},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "api_key:") {
		t.Error("Marshalled config must not contain an api_key field")
	}
	if !strings.Contains(string(data), "gauge_interval: 3s") {
		t.Errorf("Expected duration rendered as 3s, got:\n%s", data)
	}
}

func TestParseHelpers(t *testing.T) {
	var d time.Duration
	if err := parseDuration("30s", &d); err != nil || d != 30*time.Second {
		t.Errorf("parseDuration() = %v, %v", d, err)
	}
	var f float64
	if err := parseFloat("0.25", &f); err != nil || f != 0.25 {
		t.Errorf("parseFloat() = %v, %v", f, err)
	}
	var b bool
	if err := parseBool("yes", &b); err == nil {
		t.Error("parseBool() should reject yes")
	}
}
