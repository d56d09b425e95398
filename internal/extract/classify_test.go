package extract

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/api/googleapi"
)

var _ = Describe("Classify", func() {
	var (
		rawErr  error
		failure *Failure
	)

	JustBeforeEach(func() {
		failure = Classify(rawErr)
	})

	When("the error mentions an API key", func() {
		BeforeEach(func() {
			rawErr = errors.New("API key not valid. Please pass a valid API key.")
		})

		It("classifies as auth missing", func() {
			Expect(failure.Category).To(Equal(CategoryAuthMissing))
		})

		It("attaches the remediation steps", func() {
			Expect(failure.Remediation).To(Equal(AuthRemediationSteps))
			Expect(failure.Remediation).NotTo(BeEmpty())
		})
	})

	When("the provider returns HTTP 401", func() {
		BeforeEach(func() {
			rawErr = &googleapi.Error{Code: 401, Message: "request had invalid authentication credentials"}
		})

		It("classifies as auth missing with remediation", func() {
			Expect(failure.Category).To(Equal(CategoryAuthMissing))
			Expect(failure.Remediation).NotTo(BeEmpty())
		})
	})

	When("the provider returns HTTP 429", func() {
		BeforeEach(func() {
			rawErr = &googleapi.Error{Code: 429, Message: "resource has been exhausted"}
		})

		It("classifies as rate limited", func() {
			Expect(failure.Category).To(Equal(CategoryRateLimited))
			Expect(failure.Remediation).To(BeEmpty())
		})
	})

	When("the error mentions quota", func() {
		BeforeEach(func() {
			rawErr = errors.New("quota exceeded for quota metric 'GenerateContent requests'")
		})

		It("classifies as rate limited", func() {
			Expect(failure.Category).To(Equal(CategoryRateLimited))
		})
	})

	When("the call never completed normally", func() {
		BeforeEach(func() {
			rawErr = nil
		})

		It("counts as a provider error with the documented message", func() {
			Expect(failure.Category).To(Equal(CategoryProviderError))
			Expect(failure.Message).To(Equal("no data returned"))
		})
	})

	When("the deadline expired before any response", func() {
		BeforeEach(func() {
			rawErr = fmt.Errorf("generating content: %w", context.DeadlineExceeded)
		})

		It("classifies as a transport error", func() {
			Expect(failure.Category).To(Equal(CategoryTransportError))
		})
	})

	When("the network was unreachable", func() {
		BeforeEach(func() {
			rawErr = errors.New("dial tcp: lookup generativelanguage.googleapis.com: no such host")
		})

		It("classifies as a transport error with the fallback suggestion", func() {
			Expect(failure.Category).To(Equal(CategoryTransportError))
			Expect(failure.Suggestion).NotTo(BeEmpty())
		})
	})

	When("the error matches nothing known", func() {
		BeforeEach(func() {
			rawErr = errors.New("internal candidate blocked for unspecified reasons")
		})

		It("classifies as a generic provider error", func() {
			Expect(failure.Category).To(Equal(CategoryProviderError))
		})

		It("suggests falling back to local OCR", func() {
			Expect(failure.Suggestion).To(ContainSubstring("local OCR"))
		})

		It("keeps the raw error in the details", func() {
			Expect(failure.Details).To(ContainSubstring("candidate blocked"))
		})
	})
})
