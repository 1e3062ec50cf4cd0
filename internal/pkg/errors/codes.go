package errors

import (
	"fmt"
)

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrServiceUnavail  = 1003
	ErrTooManyRequests = 1004

	// Provider errors (2000-2999)
	ErrProviderRequest   = 2000
	ErrProviderResponse  = 2001
	ErrProviderTimeout   = 2002
	ErrProviderExhausted = 2003

	// Enrichment errors (3000-3999)
	ErrInferenceRequest  = 3000
	ErrInferenceResponse = 3001
	ErrSummaryFailed     = 3002
	ErrSentimentFailed   = 3003
)

// codeMessages maps error codes to default messages
var codeMessages = map[int]string{
	Success:            "success",
	ErrInternalServer:  "internal server error",
	ErrInvalidParams:   "invalid parameters",
	ErrNotFound:        "resource not found",
	ErrServiceUnavail:  "service unavailable",
	ErrTooManyRequests: "too many requests",

	ErrProviderRequest:   "provider request failed",
	ErrProviderResponse:  "unexpected provider response",
	ErrProviderTimeout:   "provider request timed out",
	ErrProviderExhausted: "provider returned no further results",

	ErrInferenceRequest:  "inference request failed",
	ErrInferenceResponse: "unexpected inference response",
	ErrSummaryFailed:     "summary generation failed",
	ErrSentimentFailed:   "sentiment analysis failed",
}

// GetMessage returns the default message for a code
func GetMessage(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error (code %d)", code)
}
