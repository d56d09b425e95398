// classify.go - Maps raw provider failures into the error taxonomy

package extract

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// AuthRemediationSteps is the setup guidance attached to every auth failure.
// Only the auth category carries structured remediation.
var AuthRemediationSteps = []string{
	"Create a Gemini API key at https://aistudio.google.com/apikey",
	"Set the GEMINI_API_KEY environment variable (or add it to your .env file)",
	"Restart the service and retry the extraction",
}

const localOCRSuggestion = "The AI provider is unavailable. If local OCR is available, fall back to it, or retry with a clearer image."

var authPatterns = []string{
	"api key", "api_key", "credential", "unauthenticated", "unauthorized",
	"permission denied", "invalid authentication",
}

var ratePatterns = []string{
	"quota", "rate limit", "rate-limit", "resource exhausted", "too many requests",
}

var transportPatterns = []string{
	"connection", "network", "no such host", "timeout", "deadline",
}

// Classify normalizes an arbitrary provider error into a Failure. Precedence:
// credential problems, then throttling, then transport, then a generic
// provider failure with a local-OCR fallback suggestion.
func Classify(err error) *Failure {
	if err == nil {
		return &Failure{
			Category: CategoryProviderError,
			Message:  "no data returned",
		}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return authFailure("The AI provider rejected the configured API key.", err.Error())
		case 429:
			return &Failure{
				Category: CategoryRateLimited,
				Message:  "The AI provider rate limit was reached. Please wait a moment and try again.",
				Details:  err.Error(),
			}
		}
	}

	msg := strings.ToLower(err.Error())

	for _, p := range authPatterns {
		if strings.Contains(msg, p) {
			return authFailure("The AI provider credential is missing or invalid.", err.Error())
		}
	}

	for _, p := range ratePatterns {
		if strings.Contains(msg, p) {
			return &Failure{
				Category: CategoryRateLimited,
				Message:  "The AI provider rate limit or quota was reached. Please wait and try again.",
				Details:  err.Error(),
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Failure{
			Category:   CategoryTransportError,
			Message:    "The extraction request did not complete in time.",
			Details:    err.Error(),
			Suggestion: localOCRSuggestion,
		}
	}
	for _, p := range transportPatterns {
		if strings.Contains(msg, p) {
			return &Failure{
				Category:   CategoryTransportError,
				Message:    "Could not reach the AI provider.",
				Details:    err.Error(),
				Suggestion: localOCRSuggestion,
			}
		}
	}

	return &Failure{
		Category:   CategoryProviderError,
		Message:    "The AI provider returned an unexpected error.",
		Details:    err.Error(),
		Suggestion: localOCRSuggestion,
	}
}

func authFailure(message, details string) *Failure {
	return &Failure{
		Category:    CategoryAuthMissing,
		Message:     message,
		Details:     details,
		Remediation: AuthRemediationSteps,
	}
}
