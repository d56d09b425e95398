// result.go - The extraction result envelope and error taxonomy

package extract

import "github.com/expenso/expense-extract/internal/schema"

// ErrorCategory is the small taxonomy every provider failure is normalized
// into. Callers branch on categories, never on raw provider errors.
type ErrorCategory string

const (
	// CategoryInvalidInput - no or undecodable image supplied by the caller.
	CategoryInvalidInput ErrorCategory = "invalid_input"
	// CategoryAuthMissing - model credential absent or rejected.
	CategoryAuthMissing ErrorCategory = "auth_missing"
	// CategoryRateLimited - provider quota or throttling.
	CategoryRateLimited ErrorCategory = "rate_limited"
	// CategoryMalformedOutput - model response failed schema validation.
	CategoryMalformedOutput ErrorCategory = "malformed_output"
	// CategoryProviderError - any other upstream failure.
	CategoryProviderError ErrorCategory = "provider_error"
	// CategoryTransportError - network failure before any response.
	CategoryTransportError ErrorCategory = "transport_error"
)

// Failure describes one classified extraction failure. Remediation is only
// populated for the auth category; everything else carries free-form message,
// detail, and suggestion strings.
type Failure struct {
	Category    ErrorCategory `json:"category"`
	Message     string        `json:"message"`
	Details     string        `json:"details,omitempty"`
	Suggestion  string        `json:"suggestion,omitempty"`
	Remediation []string      `json:"remediation,omitempty"`
}

// Result is the envelope every extraction call resolves to - success or a
// classified failure, never an uncaught fault.
type Result struct {
	Success bool
	Data    *schema.ExpenseFields
	Failure *Failure
}

// SuccessResult wraps validated fields.
func SuccessResult(fields *schema.ExpenseFields) Result {
	return Result{Success: true, Data: fields}
}

// FailureResult wraps a classified failure.
func FailureResult(f *Failure) Result {
	return Result{Success: false, Failure: f}
}
