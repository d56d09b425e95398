package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenso/expense-extract/internal/extract"
	"github.com/expenso/expense-extract/internal/schema"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Suite")
}

type fakeGateway struct {
	result extract.Result
	gotURI string
	called bool
}

func (f *fakeGateway) Extract(ctx context.Context, imageDataURI string) extract.Result {
	f.called = true
	f.gotURI = imageDataURI
	return f.result
}

var _ = Describe("ExtractHandler", func() {
	var (
		gateway  *fakeGateway
		router   *gin.Engine
		body     string
		recorder *httptest.ResponseRecorder
		response map[string]any
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		gateway = &fakeGateway{}
		router = gin.New()
		router.POST("/extract", NewHandler(gateway).ExtractHandler)
		body = `{"image": "data:image/jpeg;base64,aGVsbG8="}`
	})

	JustBeforeEach(func() {
		recorder = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, req)

		response = map[string]any{}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
	})

	When("extraction succeeds", func() {
		BeforeEach(func() {
			gateway.result = extract.SuccessResult(&schema.ExpenseFields{
				BillNo:  "INV-00123",
				Amount:  "₹245.00",
				Purpose: schema.PurposeConveyance,
				RawText: "UBER\nTrip fare\nTotal ₹245.00",
			})
		})

		It("returns 200 with the fields under data", func() {
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(response["success"]).To(BeTrue())
			data := response["data"].(map[string]any)
			Expect(data["bill_no"]).To(Equal("INV-00123"))
			Expect(data["amount"]).To(Equal("₹245.00"))
			Expect(data["purpose"]).To(Equal("Conveyance"))
		})

		It("passes the data URI through unchanged", func() {
			Expect(gateway.gotURI).To(Equal("data:image/jpeg;base64,aGVsbG8="))
		})
	})

	When("the image is bare base64 with a MIME type", func() {
		BeforeEach(func() {
			gateway.result = extract.SuccessResult(&schema.ExpenseFields{
				BillNo: "N/A", Amount: "0", Purpose: schema.PurposeOther, RawText: "x",
			})
			body = `{"image": "aGVsbG8=", "mimeType": "image/png"}`
		})

		It("synthesizes a data URI before extraction", func() {
			Expect(gateway.gotURI).To(Equal("data:image/png;base64,aGVsbG8="))
		})
	})

	When("the request body has no image", func() {
		BeforeEach(func() {
			body = `{"image": ""}`
		})

		It("returns 400 without calling the gateway", func() {
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(response["error"]).To(Equal("No image provided"))
			Expect(gateway.called).To(BeFalse())
		})
	})

	When("the request body is not JSON", func() {
		BeforeEach(func() {
			body = `not json`
		})

		It("returns 400", func() {
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	When("the credential is missing", func() {
		BeforeEach(func() {
			gateway.result = extract.FailureResult(&extract.Failure{
				Category:    extract.CategoryAuthMissing,
				Message:     "Gemini API key is not configured",
				Remediation: extract.AuthRemediationSteps,
			})
		})

		It("returns 401 with joined setup instructions", func() {
			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
			Expect(response["error"]).To(Equal("Gemini API key is not configured"))
			Expect(response["instructions"]).To(ContainSubstring("GEMINI_API_KEY"))
		})
	})

	When("the provider throttles the request", func() {
		BeforeEach(func() {
			gateway.result = extract.FailureResult(&extract.Failure{
				Category: extract.CategoryRateLimited,
				Message:  "Rate limit exceeded",
				Details:  "quota exceeded",
			})
		})

		It("returns 429 with the details", func() {
			Expect(recorder.Code).To(Equal(http.StatusTooManyRequests))
			Expect(response["error"]).To(Equal("Rate limit exceeded"))
			Expect(response["details"]).To(Equal("quota exceeded"))
		})
	})

	When("the model output was malformed", func() {
		BeforeEach(func() {
			gateway.result = extract.FailureResult(&extract.Failure{
				Category: extract.CategoryMalformedOutput,
				Message:  "Failed to extract data from image",
			})
		})

		It("returns 500 with the fixed message", func() {
			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(response["error"]).To(Equal("Failed to extract data from image"))
		})
	})

	When("the provider failed for another reason", func() {
		BeforeEach(func() {
			gateway.result = extract.FailureResult(&extract.Failure{
				Category:   extract.CategoryProviderError,
				Message:    "Extraction failed",
				Details:    "internal error",
				Suggestion: "Try again, or use the local OCR fallback.",
			})
		})

		It("returns 500 with message, details and suggestion", func() {
			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(response["error"]).To(Equal("Extraction failed"))
			Expect(response["details"]).To(Equal("internal error"))
			Expect(response["suggestion"]).To(ContainSubstring("local OCR"))
		})
	})
})

var _ = Describe("CategoriesHandler", func() {
	It("exposes all seven categories with display metadata", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/categories", NewHandler(&fakeGateway{}).CategoriesHandler)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/categories", nil))
		Expect(recorder.Code).To(Equal(http.StatusOK))

		var response struct {
			Categories []CategoryInfo `json:"categories"`
		}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(7))

		names := make([]string, 0, len(response.Categories))
		for _, c := range response.Categories {
			Expect(c.Icon).NotTo(BeEmpty())
			Expect(c.Color).To(HavePrefix("#"))
			names = append(names, c.Name)
		}
		Expect(names).To(ContainElements("Conveyance", "Train", "Bus", "Food", "Hotel", "Project Expense", "Other"))
	})
})
