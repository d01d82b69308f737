package suggest

import "errors"

var (
	// ErrUnavailable indicates no suggestion service is configured.
	ErrUnavailable = errors.New("suggestion service unavailable")
	// ErrSuperseded indicates a newer request replaced this one before it finished.
	ErrSuperseded = errors.New("suggestion request superseded by a newer request")
	// ErrEmptyPrompt indicates a blank prompt.
	ErrEmptyPrompt = errors.New("suggestion prompt is empty")
)
