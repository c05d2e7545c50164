package services

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrConfiguration = errors.New("configuration error")
	ErrUpstream      = errors.New("upstream error")
)

// AppError is an error with a stable code and a client-safe message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &AppError{Code: "VALIDATION_ERROR", Message: message, Err: ErrValidation}
}

func NewConfigurationError(message string) error {
	return &AppError{Code: "CONFIGURATION_ERROR", Message: message, Err: ErrConfiguration}
}

// UpstreamError is a failed call to a model provider.
type UpstreamError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Body)
	}
	if e.Err != nil && e.Body != "" {
		return fmt.Sprintf("%s API error: %s: %v", e.Provider, e.Body, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Body)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsRateLimited(err error) bool   { return errors.Is(err, ErrRateLimited) }
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }
func IsUpstream(err error) bool      { return errors.Is(err, ErrUpstream) }
