// request_context.go - Request tracking and logging system

package common

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// RequestContext tracks one extraction request lifecycle with timing and
// token usage.
type RequestContext struct {
	RequestID        string
	StartTime        time.Time
	Steps            []StepLog
	TotalTokens      TokenUsage
	CurrentStep      string
	CurrentStepStart time.Time
}

// StepLog represents a single processing step
type StepLog struct {
	Name      string      `json:"name"`
	StartTime time.Time   `json:"start_time"`
	Duration  int64       `json:"duration_ms"`
	Status    string      `json:"status"` // "success", "failed", "skipped"
	Tokens    *TokenUsage `json:"tokens,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// TokenUsage tracks API token consumption
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// NewRequestContext creates a new request tracking context
func NewRequestContext() *RequestContext {
	reqID := uuid.New().String()
	now := time.Now()

	log.Printf("[%s] extraction request started", reqID)

	return &RequestContext{
		RequestID: reqID,
		StartTime: now,
		Steps:     []StepLog{},
	}
}

// StartStep begins tracking a new processing step
func (rc *RequestContext) StartStep(stepName string) {
	rc.CurrentStep = stepName
	rc.CurrentStepStart = time.Now()
	log.Printf("[%s] step %s started", rc.RequestID, stepName)
}

// EndStep completes the current step and records timing
func (rc *RequestContext) EndStep(status string, tokens *TokenUsage, err error) {
	duration := time.Since(rc.CurrentStepStart).Milliseconds()

	stepLog := StepLog{
		Name:      rc.CurrentStep,
		StartTime: rc.CurrentStepStart,
		Duration:  duration,
		Status:    status,
		Tokens:    tokens,
	}

	if err != nil {
		stepLog.Error = err.Error()
		log.Printf("[%s] step %s failed after %.2fs: %v",
			rc.RequestID, rc.CurrentStep, float64(duration)/1000, err)
	} else {
		log.Printf("[%s] step %s done in %.2fs", rc.RequestID, rc.CurrentStep, float64(duration)/1000)
	}

	if tokens != nil {
		rc.TotalTokens.InputTokens += tokens.InputTokens
		rc.TotalTokens.OutputTokens += tokens.OutputTokens
		rc.TotalTokens.TotalTokens += tokens.TotalTokens
	}

	rc.Steps = append(rc.Steps, stepLog)
	rc.CurrentStep = ""
}

// LogInfo logs a message with the request ID prefix
func (rc *RequestContext) LogInfo(format string, args ...interface{}) {
	log.Printf("["+rc.RequestID+"] "+format, args...)
}

// LogWarning logs a warning with the request ID prefix
func (rc *RequestContext) LogWarning(format string, args ...interface{}) {
	log.Printf("["+rc.RequestID+"] WARNING: "+format, args...)
}

// Elapsed returns the total time since the request started
func (rc *RequestContext) Elapsed() time.Duration {
	return time.Since(rc.StartTime)
}
