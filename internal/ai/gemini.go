// gemini.go - Gemini implementation of the vision provider

package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/expenso/expense-extract/internal/common"
	"github.com/expenso/expense-extract/internal/ratelimit"
	"github.com/expenso/expense-extract/internal/schema"
)

// GeminiProvider extracts expense fields using Google Gemini with a JSON
// response schema.
type GeminiProvider struct {
	apiKey    string
	modelName string
	limiter   *ratelimit.RateLimiter
}

// NewGeminiProvider creates a Gemini provider. The API key is not checked
// here; an empty key is rejected by the gateway before any call is made.
func NewGeminiProvider(apiKey, modelName string, limiter *ratelimit.RateLimiter) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		apiKey:    apiKey,
		modelName: modelName,
		limiter:   limiter,
	}
}

// ProviderName returns the provider identifier.
func (p *GeminiProvider) ProviderName() string {
	return "gemini"
}

// ExtractReceipt performs one GenerateContent call with the image and prompt.
// No retries: the caller decides retry policy, and the result classifier
// needs the original provider error.
func (p *GeminiProvider) ExtractReceipt(ctx context.Context, mimeType string, imageData []byte, promptText string) ([]byte, *common.TokenUsage, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.modelName)

	// Explicit MaxOutputTokens prevents silent truncation of long raw_text
	// transcriptions.
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptr(int32(8192)),
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = extractionResponseSchema()

	resp, err := model.GenerateContent(ctx,
		genai.Text(promptText),
		genai.Blob{
			MIMEType: mimeType,
			Data:     imageData,
		},
	)
	if err != nil {
		return nil, nil, err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, nil
	}

	var jsonResponse string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			jsonResponse = string(text)
			break
		}
	}
	if jsonResponse == "" {
		return nil, nil, nil
	}

	var usage *common.TokenUsage
	if resp.UsageMetadata != nil {
		usage = &common.TokenUsage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return []byte(jsonResponse), usage, nil
}

// extractionResponseSchema mirrors the output contract for Gemini's
// constrained decoding. The local validator stays authoritative.
func extractionResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"bill_no": {
				Type:        genai.TypeString,
				Description: "Invoice/receipt/bill/order/transaction identifier, original formatting preserved. \"N/A\" if none found.",
			},
			"amount": {
				Type:        genai.TypeString,
				Description: "Final grand total with currency symbol preserved. \"0\" if none found.",
			},
			"purpose": {
				Type:        genai.TypeString,
				Enum:        schema.PurposeNames(),
				Description: "Single best-fit expense category.",
			},
			"raw_text": {
				Type:        genai.TypeString,
				Description: "Full transcription of all visible text in reading order.",
			},
		},
		Required: []string{"bill_no", "amount", "purpose", "raw_text"},
	}
}

// ptr is a helper function to get a pointer to an int32 value
func ptr(i int32) *int32 {
	return &i
}
