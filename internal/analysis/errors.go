package analysis

import (
	"errors"

	"github.com/kingshuk-14/sathiAI/pkg/llm"
)

var (
	ErrEmptyInput = errors.New("no text or image to analyze")
	ErrOCRFailed  = errors.New("failed to read image")
	ErrBusy       = errors.New("analysis already in flight for session")
)

// Reason names the failure class of err for metrics and logs.
func Reason(err error) string {
	var relayErr *llm.RelayError
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrOCRFailed):
		return "ocr"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, llm.ErrInvalidResponse):
		return "invalid_response"
	case errors.As(err, &relayErr):
		return "relay"
	default:
		return "internal"
	}
}
