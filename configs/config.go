// config.go - Configuration loaded from environment variables

package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// Gemini AI Configuration
	GEMINI_API_KEY string
	MODEL_NAME     string

	// Server Configuration
	PORT            string
	ALLOWED_ORIGINS string

	// Extraction settings
	EXTRACT_TIMEOUT int // Timeout for one extraction call in seconds

	// Image preprocessing settings
	ENABLE_IMAGE_PREPROCESSING bool
	MAX_IMAGE_DIMENSION        int

	// Rate limiter settings
	RATE_LIMIT_TOKENS         int
	RATE_LIMIT_REFILL_SECONDS int
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// GEMINI_API_KEY is deliberately NOT required at startup. A missing key
	// surfaces as an auth failure with setup instructions on the first
	// extraction call, so the service still boots in unconfigured setups.
	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")
	if GEMINI_API_KEY == "" {
		log.Println("GEMINI_API_KEY not set - extraction calls will return auth errors until configured")
	}

	// Optional with defaults
	MODEL_NAME = getEnv("MODEL_NAME", "gemini-2.5-flash")

	PORT = getEnv("PORT", "8080")
	ALLOWED_ORIGINS = getEnv("ALLOWED_ORIGINS", "*")

	EXTRACT_TIMEOUT = getEnvInt("EXTRACT_TIMEOUT", 60)

	// Image Processing
	ENABLE_IMAGE_PREPROCESSING = getEnvBool("ENABLE_IMAGE_PREPROCESSING", true)
	MAX_IMAGE_DIMENSION = getEnvInt("MAX_IMAGE_DIMENSION", 2000)

	// Rate limiting for the Gemini free tier (15 RPM). Defaults keep a
	// safety margin below the published limit.
	RATE_LIMIT_TOKENS = getEnvInt("RATE_LIMIT_TOKENS", 12)
	RATE_LIMIT_REFILL_SECONDS = getEnvInt("RATE_LIMIT_REFILL_SECONDS", 5)

	log.Println("Configuration loaded successfully")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
