// main.go - The entry point and router setup.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expenso/expense-extract/configs"
	"github.com/expenso/expense-extract/internal/ai"
	"github.com/expenso/expense-extract/internal/api"
	"github.com/expenso/expense-extract/internal/extract"
	"github.com/expenso/expense-extract/internal/ratelimit"
)

func main() {
	// Step 0: Load configuration from environment variables
	configs.LoadConfig()

	// Step 0.5: Set production mode
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Step 1: Build the extraction pipeline
	limiter := ratelimit.NewRateLimiter(
		configs.RATE_LIMIT_TOKENS,
		time.Duration(configs.RATE_LIMIT_REFILL_SECONDS)*time.Second,
	)

	provider, err := ai.NewVisionProvider(ai.ProviderConfig{
		GeminiAPIKey: configs.GEMINI_API_KEY,
		GeminiModel:  configs.MODEL_NAME,
		Limiter:      limiter,
	})
	if err != nil {
		log.Fatalf("Failed to create vision provider: %v", err)
	}

	gateway := extract.NewGateway(extract.Config{
		APIKey:            configs.GEMINI_API_KEY,
		Timeout:           time.Duration(configs.EXTRACT_TIMEOUT) * time.Second,
		PreprocessImages:  configs.ENABLE_IMAGE_PREPROCESSING,
		MaxImageDimension: configs.MAX_IMAGE_DIMENSION,
	}, provider)

	handler := api.NewHandler(gateway)

	// Step 2: Initialize the Gin router
	router := gin.Default()

	// Add CORS middleware - configure allowed origins for production
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", configs.ALLOWED_ORIGINS)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Root endpoint for SSL verification
	router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "expense-extract",
			"version": "1.0.0",
		})
	})

	// Step 3: Define the API routes
	router.POST("/extract", handler.ExtractHandler)
	router.GET("/categories", handler.CategoriesHandler)

	// Step 4: Setup HTTP server with timeouts
	srv := &http.Server{
		Addr:           ":" + configs.PORT,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   time.Duration(configs.EXTRACT_TIMEOUT+30) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on :%s", configs.PORT)
		log.Println("API Endpoints:")
		log.Println("  POST /extract")
		log.Println("  GET  /categories")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
