// gateway.go - Orchestrates one extraction request against the model provider

package extract

import (
	"context"
	"errors"
	"time"

	"github.com/expenso/expense-extract/internal/ai"
	"github.com/expenso/expense-extract/internal/common"
	"github.com/expenso/expense-extract/internal/processor"
	"github.com/expenso/expense-extract/internal/prompt"
	"github.com/expenso/expense-extract/internal/schema"
)

// Config is the explicit configuration the gateway is constructed with. The
// credential lives here rather than in ambient process state so its absence
// can surface as an auth failure at call time instead of a startup crash.
type Config struct {
	APIKey  string
	Timeout time.Duration

	PreprocessImages  bool
	MaxImageDimension int
}

// Gateway turns one image data URI into an extraction result. Every call
// resolves to a Result - success or classified failure - and provider errors
// never leak past this boundary.
type Gateway struct {
	cfg      Config
	provider ai.VisionProvider
}

// NewGateway creates a gateway around a vision provider.
func NewGateway(cfg Config, provider ai.VisionProvider) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Gateway{cfg: cfg, provider: provider}
}

// Extract runs one extraction attempt: decode the data URI, optionally
// preprocess, make exactly one model call, validate the output, classify any
// failure.
func (g *Gateway) Extract(ctx context.Context, imageDataURI string) Result {
	reqCtx := common.NewRequestContext()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	reqCtx.StartStep("decode_image")
	mimeType, imageData, err := DecodeDataURI(imageDataURI)
	if err != nil || len(imageData) == 0 {
		reqCtx.EndStep("failed", nil, err)
		return FailureResult(&Failure{
			Category: CategoryInvalidInput,
			Message:  "No image provided",
		})
	}
	reqCtx.EndStep("success", nil, nil)

	if g.cfg.APIKey == "" {
		reqCtx.LogWarning("extraction attempted without a configured API key")
		return FailureResult(&Failure{
			Category:    CategoryAuthMissing,
			Message:     "The AI provider credential is not configured.",
			Remediation: AuthRemediationSteps,
		})
	}

	if g.cfg.PreprocessImages {
		reqCtx.StartStep("preprocess_image")
		processed, processedMIME, prepErr := processor.PrepareImage(imageData, mimeType, g.cfg.MaxImageDimension)
		if prepErr != nil {
			// Undecodable formats (e.g. WEBP) go to the model as-is.
			reqCtx.EndStep("skipped", nil, nil)
			reqCtx.LogWarning("image preprocessing skipped: %v", prepErr)
		} else {
			imageData = processed
			mimeType = processedMIME
			reqCtx.EndStep("success", nil, nil)
		}
	}

	reqCtx.StartStep("call_model")
	raw, usage, err := g.provider.ExtractReceipt(ctx, mimeType, imageData, prompt.BuildExtractionPrompt())
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		return FailureResult(Classify(err))
	}
	if raw == nil {
		// The call completed without error but produced nothing usable.
		reqCtx.EndStep("failed", nil, errors.New("no data returned"))
		return FailureResult(Classify(nil))
	}
	reqCtx.EndStep("success", usage, nil)

	reqCtx.StartStep("validate_output")
	fields, err := schema.ValidateExtraction(raw)
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		var vErr *schema.ValidationError
		if errors.As(err, &vErr) {
			return FailureResult(&Failure{
				Category: CategoryMalformedOutput,
				Message:  "Failed to extract data from image",
				Details:  vErr.Detail,
			})
		}
		return FailureResult(&Failure{
			Category: CategoryMalformedOutput,
			Message:  "Failed to extract data from image",
			Details:  err.Error(),
		})
	}
	reqCtx.EndStep("success", nil, nil)

	reqCtx.LogInfo("extraction done in %.2fs (purpose: %s)", reqCtx.Elapsed().Seconds(), fields.Purpose)
	return SuccessResult(fields)
}
