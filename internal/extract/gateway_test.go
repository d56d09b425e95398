package extract

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenso/expense-extract/internal/common"
	"github.com/expenso/expense-extract/internal/schema"
)

// fakeProvider scripts one model response per test.
type fakeProvider struct {
	response []byte
	usage    *common.TokenUsage
	err      error

	called    bool
	gotMIME   string
	gotImage  []byte
	gotPrompt string
}

func (f *fakeProvider) ExtractReceipt(ctx context.Context, mimeType string, imageData []byte, promptText string) ([]byte, *common.TokenUsage, error) {
	f.called = true
	f.gotMIME = mimeType
	f.gotImage = imageData
	f.gotPrompt = promptText
	return f.response, f.usage, f.err
}

func (f *fakeProvider) ProviderName() string { return "fake" }

var _ = Describe("Gateway", func() {
	var (
		provider *fakeProvider
		cfg      Config
		uri      string
		result   Result
	)

	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	BeforeEach(func() {
		provider = &fakeProvider{}
		cfg = Config{APIKey: "test-key"}
		uri = EncodeDataURI("image/jpeg", imageBytes)
	})

	JustBeforeEach(func() {
		result = NewGateway(cfg, provider).Extract(context.Background(), uri)
	})

	When("the model returns a conforming response", func() {
		BeforeEach(func() {
			provider.response = []byte(`{"bill_no": "TXN-778", "amount": "$12.50", "purpose": "Food", "raw_text": "Cafe receipt"}`)
		})

		It("returns a success result with the validated fields", func() {
			Expect(result.Success).To(BeTrue())
			Expect(result.Failure).To(BeNil())
			Expect(result.Data.BillNo).To(Equal("TXN-778"))
			Expect(result.Data.Amount).To(Equal("$12.50"))
			Expect(result.Data.Purpose).To(Equal(schema.PurposeFood))
		})

		It("sends the decoded image bytes and MIME type to the provider", func() {
			Expect(provider.gotMIME).To(Equal("image/jpeg"))
			Expect(provider.gotImage).To(Equal(imageBytes))
		})

		It("sends a non-empty instruction prompt", func() {
			Expect(provider.gotPrompt).To(ContainSubstring("purpose"))
		})
	})

	When("the payload is not a decodable image URI", func() {
		BeforeEach(func() {
			uri = "data:image/png;base64,***not-base64***"
		})

		It("fails as invalid input without calling the provider", func() {
			Expect(result.Success).To(BeFalse())
			Expect(result.Failure.Category).To(Equal(CategoryInvalidInput))
			Expect(provider.called).To(BeFalse())
		})
	})

	When("the payload is empty", func() {
		BeforeEach(func() {
			uri = ""
		})

		It("fails as invalid input", func() {
			Expect(result.Failure.Category).To(Equal(CategoryInvalidInput))
		})
	})

	When("no API key is configured", func() {
		BeforeEach(func() {
			cfg.APIKey = ""
		})

		It("fails as auth missing at call time, before any provider call", func() {
			Expect(result.Failure.Category).To(Equal(CategoryAuthMissing))
			Expect(result.Failure.Remediation).To(Equal(AuthRemediationSteps))
			Expect(provider.called).To(BeFalse())
		})
	})

	When("the provider call fails with a credential error", func() {
		BeforeEach(func() {
			provider.err = errors.New("API key not valid. Please pass a valid API key.")
		})

		It("returns the classified auth failure", func() {
			Expect(result.Failure.Category).To(Equal(CategoryAuthMissing))
		})
	})

	When("the provider resolves with no data and no error", func() {
		BeforeEach(func() {
			provider.response = nil
		})

		It("fails as a provider error with the documented message", func() {
			Expect(result.Failure.Category).To(Equal(CategoryProviderError))
			Expect(result.Failure.Message).To(Equal("no data returned"))
		})
	})

	When("the model output fails schema validation", func() {
		BeforeEach(func() {
			provider.response = []byte(`{"bill_no": "X-1", "amount": "10", "purpose": "Shopping", "raw_text": "mall"}`)
		})

		It("fails as malformed output, never coercing a default", func() {
			Expect(result.Success).To(BeFalse())
			Expect(result.Failure.Category).To(Equal(CategoryMalformedOutput))
			Expect(result.Failure.Message).To(Equal("Failed to extract data from image"))
		})
	})

	When("the model output is not JSON", func() {
		BeforeEach(func() {
			provider.response = []byte("sorry, I cannot read this image")
		})

		It("fails as malformed output", func() {
			Expect(result.Failure.Category).To(Equal(CategoryMalformedOutput))
		})
	})
})
