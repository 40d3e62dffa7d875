package apiglot

import (
	"errors"
	"fmt"
)

// ErrI18nNotConfigured is returned when the site configuration has no i18n section.
var ErrI18nNotConfigured = errors.New("i18n is not configured for this project")

// ExtractError indicates that a page could not be read for extraction.
type ExtractError struct {
	Path  string
	Cause error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// TranslationError is a failed translation of one file into one locale.
type TranslationError struct {
	Message string
	File    string
	Locale  string
	Cause   error
}

func (e *TranslationError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = fmt.Sprintf("%s (%s -> %s)", msg, e.File, e.Locale)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// APIError is a non-2xx answer from the Apiglot API.
type APIError struct {
	Status     int
	StatusText string
	Message    string // "error" field of a JSON body, empty otherwise
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.StatusText
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, msg)
}

// ProviderError indicates a translation backend failure.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
