package ai

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderError_Error(t *testing.T) {
	err := NewProviderErrorWithCause(ErrTypeNetwork, "request failed", "gemini", errors.New("connection reset"))

	msg := err.Error()
	for _, want := range []string{"provider=gemini", "type=network", "request failed", "cause=connection reset"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	if !errors.Is(err, &ProviderError{Type: ErrTypeNetwork}) {
		t.Error("expected errors.Is to match on type")
	}
	if errors.Is(err, &ProviderError{Type: ErrTypeTimeout}) {
		t.Error("expected errors.Is not to match a different type")
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		configuration bool
		validation    bool
		timeout       bool
	}{
		{
			name:          "configuration error",
			err:           NewConfigurationError("gemini", "api_key", "missing"),
			configuration: true,
		},
		{
			name:          "wrapped configuration error",
			err:           fmt.Errorf("setup: %w", NewConfigurationError("gemini", "api_key", "missing")),
			configuration: true,
		},
		{
			name:       "validation error",
			err:        NewValidationError("prompt", "", "required"),
			validation: true,
		},
		{
			name:    "timeout provider error",
			err:     NewProviderError(ErrTypeTimeout, "deadline exceeded", "gemini"),
			timeout: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigurationError(tt.err); got != tt.configuration {
				t.Errorf("IsConfigurationError() = %v, want %v", got, tt.configuration)
			}
			if got := IsValidationError(tt.err); got != tt.validation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.validation)
			}
			if got := IsTimeoutError(tt.err); got != tt.timeout {
				t.Errorf("IsTimeoutError() = %v, want %v", got, tt.timeout)
			}
		})
	}
}
