package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/yildizm/rhea/internal/ai"
)

// Provider implements ai.Provider on top of the genai SDK
type Provider struct {
	config *Config

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

// New creates a new Gemini provider. No client is built until the first call,
// so a missing key never fails construction.
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Keys == nil {
		config.Keys = EnvKeySource(DefaultKeyEnv...)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Provider{config: config}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderName
}

// Complete performs a single generateContent call
func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key, err := p.config.Keys()
	if err != nil {
		return nil, err
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	client, err := p.clientFor(ctx, key)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), buildGenerateConfig(req))
	if err != nil {
		return nil, mapError(err)
	}

	return toCompletionResponse(resp, model, req.RequestID), nil
}

// ValidateConfig validates the provider configuration
func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

// Refresh drops the cached client so the next call rebuilds it
func (p *Provider) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = nil
	p.clientKey = ""
}

// Close releases the cached client
func (p *Provider) Close() error {
	p.Refresh()
	return nil
}

// clientFor returns the cached client for key, rebuilding it if the key changed
func (p *Provider) clientFor(ctx context.Context, key string) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil && p.clientKey == key {
		return p.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if p.config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeConfiguration, "failed to create client", ProviderName, err)
	}

	p.client = client
	p.clientKey = key
	return client, nil
}

// mapError classifies a generateContent failure
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "generation timed out", ProviderName, err)
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeProvider, "generate content failed", ProviderName, err)
	}

	errType := ai.ErrTypeProvider
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ai.ErrTypeAuthentication
	case http.StatusNotFound:
		errType = ai.ErrTypeNotFound
	case http.StatusTooManyRequests:
		errType = ai.ErrTypeRateLimit
	case http.StatusBadRequest:
		errType = ai.ErrTypeValidation
	}

	message := apiErr.Message
	if message == "" {
		message = "generate content failed"
	}
	pe := ai.NewProviderErrorWithCause(errType, message, ProviderName, err)
	pe.StatusCode = apiErr.Code
	return pe
}

func buildGenerateConfig(req *ai.CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*req.Temperature))
	}
	if req.TopP != nil {
		cfg.TopP = genai.Ptr(float32(*req.TopP))
	}
	if req.TopK != nil {
		cfg.TopK = genai.Ptr(float32(*req.TopK))
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(*req.ThinkingBudget)),
		}
	}

	return cfg
}

func toCompletionResponse(resp *genai.GenerateContentResponse, model, requestID string) *ai.CompletionResponse {
	out := &ai.CompletionResponse{
		Content:   resp.Text(),
		Model:     model,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.FinishReason = string(resp.Candidates[0].FinishReason)
	}

	if usage := resp.UsageMetadata; usage != nil {
		out.Usage = &ai.TokenUsage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	return out
}
