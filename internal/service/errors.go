package service

import (
	"fmt"
	"net/http"
)

const (
	msgMessageRequired   = "Message is required and cannot be empty"
	msgScorerUnavailable = "Scoring engine is unavailable. Please try again later."
	msgScorerError       = "Error from scoring engine"
	msgInvalidResponse   = "Invalid response from scoring engine"
)

// ValidationError reports malformed caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError returns the error used for an empty or missing message.
func NewValidationError() *ValidationError {
	return &ValidationError{Message: msgMessageRequired}
}

// ScorerUnavailableError means the scoring engine could not be reached.
type ScorerUnavailableError struct {
	Err error
}

func (e *ScorerUnavailableError) Error() string {
	return fmt.Sprintf("scoring engine unavailable: %v", e.Err)
}

func (e *ScorerUnavailableError) Unwrap() error { return e.Err }

func (e *ScorerUnavailableError) Message() string { return msgScorerUnavailable }

// ScorerUpstreamError carries a non-2xx answer from the scoring engine.
type ScorerUpstreamError struct {
	Status int
	Msg    string
}

func (e *ScorerUpstreamError) Error() string {
	return fmt.Sprintf("scoring engine returned %d: %s", e.Status, e.Message())
}

// Message is the engine's own error text, or a generic one when it sent none.
func (e *ScorerUpstreamError) Message() string {
	if e.Msg == "" {
		return msgScorerError
	}
	return e.Msg
}

// StatusCode clamps anything that is not an HTTP error status to 502.
func (e *ScorerUpstreamError) StatusCode() int {
	if e.Status < 400 || e.Status > 599 {
		return http.StatusBadGateway
	}
	return e.Status
}

// InvalidScorerResponseError means the engine answered 2xx with an unusable body.
type InvalidScorerResponseError struct {
	Err error
}

func (e *InvalidScorerResponseError) Error() string {
	return fmt.Sprintf("invalid scorer response: %v", e.Err)
}

func (e *InvalidScorerResponseError) Unwrap() error { return e.Err }

func (e *InvalidScorerResponseError) Message() string { return msgInvalidResponse }
