package ai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorType represents the type of AI-related error
type ErrorType string

const (
	// ErrTypeProvider indicates provider-related errors
	ErrTypeProvider ErrorType = "provider"

	// ErrTypeConfiguration indicates configuration errors
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeAuthentication indicates authentication errors
	ErrTypeAuthentication ErrorType = "authentication"

	// ErrTypeRateLimit indicates rate limiting errors
	ErrTypeRateLimit ErrorType = "rate_limit"

	// ErrTypeNetwork indicates network-related errors
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates timeout errors
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeValidation indicates input validation errors
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeRegistration indicates provider registration errors
	ErrTypeRegistration ErrorType = "registration"

	// ErrTypeNotFound indicates provider not found errors
	ErrTypeNotFound ErrorType = "not_found"

	// ErrTypeInternal indicates internal system errors
	ErrTypeInternal ErrorType = "internal"
)

// ProviderError represents errors specific to AI providers
type ProviderError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Provider   string    `json:"provider,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	var parts []string

	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *ProviderError) Is(target error) bool {
	if pe, ok := target.(*ProviderError); ok {
		return e.Type == pe.Type
	}
	return false
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for provider '%s', field '%s': %s",
		e.Provider, e.Field, e.Message)
}

// NewProviderError creates a new provider error
func NewProviderError(errType ErrorType, message, provider string) *ProviderError {
	return &ProviderError{
		Type:     errType,
		Message:  message,
		Provider: provider,
	}
}

// NewProviderErrorWithCause creates a provider error with an underlying cause
func NewProviderErrorWithCause(errType ErrorType, message, provider string, cause error) *ProviderError {
	return &ProviderError{
		Type:     errType,
		Message:  message,
		Provider: provider,
		Cause:    cause,
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{
		Provider: provider,
		Field:    field,
		Message:  message,
	}
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeConfiguration
	}
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeValidation
	}
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTimeoutError checks if an error is a provider timeout
func IsTimeoutError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeTimeout
	}
	return false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
