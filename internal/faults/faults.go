// ABOUTME: Typed error taxonomy shared across the study core
// ABOUTME: Distinguishes missing configuration, upstream failures, and bad input
package faults

import (
	"errors"
	"fmt"
)

// ConfigurationError means a required credential or service setting is
// absent. It fails fast and should not be retried.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration missing: %s", e.Setting)
}

// UpstreamError means an external service was reachable but returned a
// failure. Message carries the upstream error body when present.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error: %s", e.Service, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s error (status %d)", e.Service, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError means the caller supplied malformed configuration or
// input, e.g. a chunk overlap that leaves no step size.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUpstream reports whether err is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
