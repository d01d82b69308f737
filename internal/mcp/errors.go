package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/quotestudio/internal/domain/collection"
	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/suggest"
)

var (
	// ErrInvalidParams wraps argument decoding failures.
	ErrInvalidParams = errors.New("invalid params")
	// ErrUnknownMethod is returned for methods outside the tool catalog.
	ErrUnknownMethod = errors.New("unknown method")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, collection.ErrLastProject):
		return &APIError{Code: "LAST_PROJECT", Message: "cannot delete the last remaining project", RecoveryHint: "Create another project first"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, suggest.ErrEmptyPrompt):
		return &APIError{Code: "EMPTY_PROMPT", Message: "prompt is empty", RecoveryHint: "Describe the production to get suggestions"}
	case errors.Is(err, suggest.ErrSuperseded):
		return &APIError{Code: "SUPERSEDED", Message: "a newer suggestion request replaced this one"}
	case errors.Is(err, suggest.ErrUnavailable):
		return &APIError{Code: "SUGGESTIONS_UNAVAILABLE", Message: "suggestion service unavailable", RecoveryHint: "Add items manually or configure an AI provider"}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "METHOD_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call tools/list for available methods"}
	case errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), RecoveryHint: "Check the tool input schema"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
