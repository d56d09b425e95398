// interface.go - Vision provider interface for supporting multiple AI providers

package ai

import (
	"context"

	"github.com/expenso/expense-extract/internal/common"
)

// VisionProvider is the seam between the extraction gateway and a hosted
// multimodal model. Implementations return the model's raw JSON output -
// validation happens at the gateway, where the model is treated as an
// untrusted producer.
type VisionProvider interface {
	// ExtractReceipt sends one image plus the instruction text to the model
	// and returns the raw JSON response bytes. Exactly one outbound request
	// per invocation; retry policy belongs to the caller.
	ExtractReceipt(ctx context.Context, mimeType string, imageData []byte, promptText string) ([]byte, *common.TokenUsage, error)

	// ProviderName returns the name of the provider (e.g., "gemini")
	ProviderName() string
}
