// handlers.go - HTTP handlers for the extraction endpoint

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/expenso/expense-extract/internal/extract"
	"github.com/expenso/expense-extract/internal/schema"
)

// Extractor is the gateway seam the handlers depend on.
type Extractor interface {
	Extract(ctx context.Context, imageDataURI string) extract.Result
}

// ExtractRequest is the JSON request body for POST /extract. The image may
// be a full data URI or a bare base64 string with a separate MIME type.
type ExtractRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

// CategoryInfo describes one expense category for UI rendering.
type CategoryInfo struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Handler holds the handler dependencies.
type Handler struct {
	gateway Extractor
}

// NewHandler creates the API handler set around an extraction gateway.
func NewHandler(gateway Extractor) *Handler {
	return &Handler{gateway: gateway}
}

// ExtractHandler handles POST requests to /extract
func (h *Handler) ExtractHandler(c *gin.Context) {
	var req ExtractRequest
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Image) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	imageDataURI := extract.EnsureDataURI(req.Image, req.MimeType)
	result := h.gateway.Extract(c.Request.Context(), imageDataURI)

	if result.Success {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Data,
		})
		return
	}

	writeFailure(c, result.Failure)
}

// writeFailure maps a classified failure onto the wire contract. Status and
// body shape vary by category; remediation instructions render only for the
// auth category.
func writeFailure(c *gin.Context, f *extract.Failure) {
	switch f.Category {
	case extract.CategoryInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})

	case extract.CategoryAuthMissing:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":        f.Message,
			"instructions": strings.Join(f.Remediation, "\n"),
		})

	case extract.CategoryRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   f.Message,
			"details": f.Details,
		})

	case extract.CategoryMalformedOutput:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract data from image"})

	default:
		// provider and transport failures
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      f.Message,
			"details":    f.Details,
			"suggestion": f.Suggestion,
		})
	}
}

// CategoriesHandler handles GET requests to /categories, exposing the closed
// category set with its display metadata so clients render from one source
// of truth.
func (h *Handler) CategoriesHandler(c *gin.Context) {
	categories := make([]CategoryInfo, 0, len(schema.AllPurposes))
	for _, p := range schema.AllPurposes {
		d := p.Display()
		categories = append(categories, CategoryInfo{
			Name:  string(p),
			Icon:  d.Icon,
			Color: d.Color,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
