// factory.go - Vision provider factory

package ai

import (
	"fmt"
	"log"

	"github.com/expenso/expense-extract/internal/ratelimit"
)

// ProviderConfig contains configuration for vision providers.
type ProviderConfig struct {
	// Provider name; currently only "gemini" is supported.
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	Limiter *ratelimit.RateLimiter
}

// NewVisionProvider creates a vision provider based on configuration. An
// empty provider name selects Gemini.
func NewVisionProvider(cfg ProviderConfig) (VisionProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		log.Printf("Creating Gemini vision provider (model: %s)", cfg.GeminiModel)
		return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Limiter), nil

	default:
		return nil, fmt.Errorf("unsupported vision provider: %s (supported: gemini)", cfg.Provider)
	}
}
