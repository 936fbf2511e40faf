package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yildizm/rhea/internal/ai"
)

const testAPIKey = "test-api-key"

type capturedRequest struct {
	path string
	key  string
	body map[string]any
}

func newGeminiServer(t *testing.T, text string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []capturedRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		mu.Lock()
		requests = append(requests, capturedRequest{
			path: r.URL.Path,
			key:  r.Header.Get("x-goog-api-key"),
			body: body,
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": `+jsonString(text)+`}]},
    "finishReason": "STOP"
  }],
  "usageMetadata": {"promptTokenCount": 5, "candidatesTokenCount": 4, "totalTokenCount": 9}
}`)
	}))
	t.Cleanup(server.Close)

	return server, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		out := make([]capturedRequest, len(requests))
		copy(out, requests)
		return out
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "defaults",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "custom endpoint",
			config:  &Config{BaseURL: "http://localhost:8080/", DefaultModel: DefaultModel},
			wantErr: false,
		},
		{
			name:    "bad scheme",
			config:  &Config{BaseURL: "ftp://example.com", DefaultModel: DefaultModel},
			wantErr: true,
		},
		{
			name:    "missing model",
			config:  &Config{},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			config:  &Config{DefaultModel: DefaultModel, Timeout: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvKeySource(t *testing.T) {
	t.Setenv("RHEA_TEST_PRIMARY", "")
	t.Setenv("RHEA_TEST_FALLBACK", "fallback-key")

	keys := EnvKeySource("RHEA_TEST_PRIMARY", "RHEA_TEST_FALLBACK")
	key, err := keys()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "fallback-key" {
		t.Errorf("expected fallback-key, got %q", key)
	}

	// Read at call time, not at construction time.
	t.Setenv("RHEA_TEST_PRIMARY", "primary-key")
	key, _ = keys()
	if key != "primary-key" {
		t.Errorf("expected primary-key after env change, got %q", key)
	}

	t.Setenv("RHEA_TEST_PRIMARY", "")
	t.Setenv("RHEA_TEST_FALLBACK", "")
	if _, err := keys(); !ai.IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestProvider_MissingKeyFailsAtCallTime(t *testing.T) {
	provider, err := New(&Config{
		DefaultModel: DefaultModel,
		Keys:         EnvKeySource("RHEA_TEST_UNSET_KEY"),
	})
	if err != nil {
		t.Fatalf("New() should not require a key, got %v", err)
	}

	_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "hello"})
	if !ai.IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestProvider_Complete(t *testing.T) {
	server, requests := newGeminiServer(t, "Risk: 12/100")

	provider, err := New(&Config{
		BaseURL:      server.URL + "/",
		DefaultModel: DefaultModel,
		Keys:         ai.StaticKey(testAPIKey),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = provider.Close() }()

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "Code to analyze:\nscan ports",
		SystemPrompt: "Act as a security module.",
		Model:        "gemini-3-flash-preview",
		Temperature:  ai.Float64(0.1),
		RequestID:    "req-1",
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if resp.Content != "Risk: 12/100" {
		t.Errorf("expected content 'Risk: 12/100', got %q", resp.Content)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("expected request id req-1, got %q", resp.RequestID)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 9 {
		t.Errorf("expected usage total 9, got %+v", resp.Usage)
	}

	got := requests()
	if len(got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got))
	}
	if !strings.HasSuffix(got[0].path, "gemini-3-flash-preview:generateContent") {
		t.Errorf("unexpected path %s", got[0].path)
	}
	if got[0].key != testAPIKey {
		t.Errorf("expected api key header %q, got %q", testAPIKey, got[0].key)
	}
	if _, ok := got[0].body["systemInstruction"]; !ok {
		t.Error("expected systemInstruction in request body")
	}
}

func TestProvider_APIErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType ai.ErrorType
	}{
		{name: "bad key", status: http.StatusUnauthorized, wantType: ai.ErrTypeAuthentication},
		{name: "unknown model", status: http.StatusNotFound, wantType: ai.ErrTypeNotFound},
		{name: "bad request", status: http.StatusBadRequest, wantType: ai.ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprintf(w, `{"error": {"code": %d, "message": "request rejected", "status": "REJECTED"}}`, tt.status)
			}))
			defer server.Close()

			provider, err := New(&Config{
				BaseURL:      server.URL + "/",
				DefaultModel: DefaultModel,
				Keys:         ai.StaticKey(testAPIKey),
			})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "hello"})

			var pe *ai.ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ProviderError, got %v", err)
			}
			if pe.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, pe.Type)
			}
			if pe.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, pe.StatusCode)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	if err := mapError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)); !ai.IsTimeoutError(err) {
		t.Errorf("expected timeout error, got %v", err)
	}

	err := mapError(context.Canceled)
	var pe *ai.ProviderError
	if !errors.As(err, &pe) || pe.Type != ai.ErrTypeProvider {
		t.Errorf("expected provider error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected cause to be preserved")
	}
}

func TestProvider_RefreshesClientWhenKeyChanges(t *testing.T) {
	server, requests := newGeminiServer(t, "ok")

	var calls atomic.Int32
	keys := func() (string, error) {
		if calls.Add(1) == 1 {
			return "first-key", nil
		}
		return "second-key", nil
	}

	provider, err := New(&Config{BaseURL: server.URL + "/", DefaultModel: DefaultModel, Keys: keys})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "ping"}); err != nil {
			t.Fatalf("Complete() #%d error = %v", i, err)
		}
	}

	got := requests()
	if len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(got))
	}
	if got[0].key != "first-key" || got[1].key != "second-key" {
		t.Errorf("expected keys first-key then second-key, got %q then %q", got[0].key, got[1].key)
	}
}

func TestBuildGenerateConfig(t *testing.T) {
	cfg := buildGenerateConfig(&ai.CompletionRequest{
		Prompt:         "x",
		SystemPrompt:   "persona",
		Temperature:    ai.Float64(0.7),
		TopP:           ai.Float64(0.9),
		TopK:           ai.Int(40),
		ThinkingBudget: ai.Int(2000),
	})

	if cfg.SystemInstruction == nil {
		t.Fatal("expected system instruction")
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Errorf("unexpected temperature %v", cfg.Temperature)
	}
	if cfg.TopP == nil || *cfg.TopP != float32(0.9) {
		t.Errorf("unexpected top_p %v", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != 40 {
		t.Errorf("unexpected top_k %v", cfg.TopK)
	}
	if cfg.ThinkingConfig == nil || cfg.ThinkingConfig.ThinkingBudget == nil || *cfg.ThinkingConfig.ThinkingBudget != 2000 {
		t.Errorf("unexpected thinking config %+v", cfg.ThinkingConfig)
	}

	bare := buildGenerateConfig(&ai.CompletionRequest{Prompt: "x", Temperature: ai.Float64(0.2)})
	if bare.TopP != nil || bare.TopK != nil || bare.ThinkingConfig != nil || bare.SystemInstruction != nil {
		t.Errorf("expected unset optional fields, got %+v", bare)
	}

	zeros := buildGenerateConfig(&ai.CompletionRequest{
		Prompt:         "x",
		Temperature:    ai.Float64(0),
		TopP:           ai.Float64(0),
		TopK:           ai.Int(0),
		ThinkingBudget: ai.Int(0),
	})
	if zeros.Temperature == nil || *zeros.Temperature != 0 {
		t.Errorf("expected temperature 0 to be sent, got %v", zeros.Temperature)
	}
	if zeros.TopP == nil || *zeros.TopP != 0 {
		t.Errorf("expected top_p 0 to be sent, got %v", zeros.TopP)
	}
	if zeros.TopK == nil || *zeros.TopK != 0 {
		t.Errorf("expected top_k 0 to be sent, got %v", zeros.TopK)
	}
	if zeros.ThinkingConfig == nil || zeros.ThinkingConfig.ThinkingBudget == nil || *zeros.ThinkingConfig.ThinkingBudget != 0 {
		t.Errorf("expected thinking budget 0 to disable thinking, got %+v", zeros.ThinkingConfig)
	}

	unset := buildGenerateConfig(&ai.CompletionRequest{Prompt: "x"})
	if unset.Temperature != nil {
		t.Errorf("expected no temperature when unset, got %v", *unset.Temperature)
	}
}

func TestFactory(t *testing.T) {
	factory := NewFactory()
	if factory.Type() != ProviderName {
		t.Errorf("expected type %s, got %s", ProviderName, factory.Type())
	}
	if err := factory.ValidateConfig(nil); !ai.IsConfigurationError(err) {
		t.Errorf("expected configuration error for nil config, got %v", err)
	}

	registry := ai.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	provider, err := registry.Create(ProviderName, &ai.ProviderConfig{
		Name:   ProviderName,
		KeyEnv: []string{"RHEA_TEST_UNSET_KEY"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if provider.Name() != ProviderName {
		t.Errorf("expected provider name %s, got %s", ProviderName, provider.Name())
	}
}
