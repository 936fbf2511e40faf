package ai

import (
	"time"
)

// CompletionRequest represents a request for text generation
type CompletionRequest struct {
	// Prompt is the input text for generation
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Model specifies which model to use (provider-specific)
	Model string `json:"model,omitempty"`

	// Sampling parameters. Nil leaves the provider default; a set zero is sent as is.
	Temperature *float64 `json:"temperature,omitempty"` // 0.0 to 2.0
	TopP        *float64 `json:"top_p,omitempty"`       // 0.0 to 1.0
	TopK        *int     `json:"top_k,omitempty"`

	// ThinkingBudget caps reasoning tokens; zero disables thinking
	ThinkingBudget *int `json:"thinking_budget,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Metadata for request tracking
	RequestID string            `json:"request_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Validate checks the request before it is sent
func (r *CompletionRequest) Validate() error {
	return validateCompletionRequest(r)
}

func validateCompletionRequest(r *CompletionRequest) error {
	if r == nil {
		return NewValidationError("request", "nil", "completion request is required")
	}
	if r.Prompt == "" {
		return NewValidationError("prompt", "", "prompt is required")
	}
	if t := r.Temperature; t != nil && (*t < 0 || *t > 2) {
		return NewValidationError("temperature", formatFloat(*t), "temperature must be between 0 and 2")
	}
	if p := r.TopP; p != nil && (*p < 0 || *p > 1) {
		return NewValidationError("top_p", formatFloat(*p), "top_p must be between 0 and 1")
	}
	if k := r.TopK; k != nil && *k < 0 {
		return NewValidationError("top_k", formatInt(*k), "top_k must be non-negative")
	}
	if r.MaxTokens < 0 {
		return NewValidationError("max_tokens", formatInt(r.MaxTokens), "max_tokens must be non-negative")
	}
	if b := r.ThinkingBudget; b != nil && *b < 0 {
		return NewValidationError("thinking_budget", formatInt(*b), "thinking_budget must be non-negative")
	}
	return nil
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text, possibly empty
	Content string `json:"content"`

	// FinishReason indicates why the generation finished
	FinishReason string `json:"finish_reason,omitempty"`

	// Usage contains token usage information
	Usage *TokenUsage `json:"usage,omitempty"`

	// Model indicates which model was used
	Model string `json:"model"`

	// RequestID matches the original request
	RequestID string `json:"request_id,omitempty"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// BaseURL overrides the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// KeyEnv lists the environment variables consulted for the credential, in order
	KeyEnv []string `json:"key_env,omitempty"`

	// Timeout for requests; zero means no timeout
	Timeout time.Duration `json:"timeout,omitempty"`
}
