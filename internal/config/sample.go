package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# RHEA-AI configuration
version: "1.0"

ai:
  # Provider backing the prompt dispatcher (gemini)
  provider: gemini
  # Override the generative-language base URL; empty uses the default
  endpoint: ""
  # Environment variables searched, in order, for the API key.
  # The key itself is never stored in this file.
  api_key_env:
    - GEMINI_API_KEY
    - API_KEY
  # Per-request timeout; 0 leaves requests unbounded
  timeout: 0s

profiles:
  # Used by every panel except Builder and Security
  reasoning:
    model: gemini-3-pro-preview
    temperature: 0.7
    top_p: 0.9
    top_k: 40
    thinking_budget: 2000
  # Builder panel
  code:
    model: gemini-3-flash-preview
    temperature: 0.2
  # Security panel
  security:
    model: gemini-3-flash-preview
    temperature: 0.1

console:
  # emerald | high-contrast | minimal
  theme: emerald
  # How often the neural load gauge moves
  gauge_interval: 3s
  # Seed the log with the boot sequence
  boot_lines: true

output:
  # auto | always | never
  color_mode: auto
  no_emoji: false

logging:
  # Diagnostic log written while the dashboard owns the terminal
  file: ~/.cache/rhea/rhea.log
  verbose: false
`
}

// MinimalSampleConfig returns the smallest useful configuration file
func MinimalSampleConfig() string {
	return `ai:
  provider: gemini
  api_key_env: [GEMINI_API_KEY]

console:
  theme: emerald
`
}
