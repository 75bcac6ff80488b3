package apiretry_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apiretry "github.com/JohnPlummer/jp-go-apiretry"
)

var _ = Describe("MessageClassifier", func() {
	var classifier *apiretry.MessageClassifier

	BeforeEach(func() {
		classifier = apiretry.NewMessageClassifier()
	})

	Context("with default patterns", func() {
		DescribeTable("marks transient messages as retryable",
			func(msg string) {
				Expect(classifier.IsRetryable(errors.New(msg))).To(BeTrue())
			},
			Entry("429 status", "429 Too Many Requests"),
			Entry("quota keyword", "quota exceeded for project"),
			Entry("rate limit keyword", "rate limit reached, slow down"),
			Entry("500 status", "500 Internal Server Error"),
			Entry("503 status", "503 Service Unavailable"),
			Entry("uppercase phrase", "RATE LIMIT EXCEEDED"),
			Entry("mixed case phrase", "Quota Exhausted"),
			Entry("pattern mid-sentence", "upstream said: your quota is gone"),
			Entry("status embedded in larger number", "request 15035 failed"),
			Entry("rate limited variant", "rate limited by upstream"),
		)

		DescribeTable("marks everything else as non-retryable",
			func(msg string) {
				Expect(classifier.IsRetryable(errors.New(msg))).To(BeFalse())
			},
			Entry("bad request", "400 Bad Request"),
			Entry("not found", "404 model not found"),
			Entry("auth failure", "401 Unauthorized"),
			Entry("hyphenated phrase does not match", "rate-limit exceeded"),
			Entry("plain network error", "connection refused"),
			Entry("context cancellation", "context canceled"),
			Entry("empty message", ""),
		)

		It("returns false for a nil error", func() {
			Expect(classifier.IsRetryable(nil)).To(BeFalse())
		})
	})

	Context("with custom patterns", func() {
		It("uses the configured patterns instead of the defaults", func() {
			custom := &apiretry.MessageClassifier{
				Patterns: []string{"teapot"},
			}

			Expect(custom.IsRetryable(errors.New("418 I'm a teapot"))).To(BeTrue())
			Expect(custom.IsRetryable(errors.New("503 Service Unavailable"))).To(BeFalse())
		})

		It("matches custom patterns case-insensitively", func() {
			custom := &apiretry.MessageClassifier{
				Patterns: []string{"Overloaded"},
			}

			Expect(custom.IsRetryable(errors.New("server OVERLOADED, back off"))).To(BeTrue())
		})

		It("retries nothing when the pattern list is empty", func() {
			custom := &apiretry.MessageClassifier{
				Patterns: []string{},
			}

			Expect(custom.IsRetryable(errors.New("429 Too Many Requests"))).To(BeFalse())
		})
	})
})

var _ = Describe("ClassifierFunc", func() {
	It("adapts a plain function to the ErrorClassifier interface", func() {
		sentinel := errors.New("try again")
		classifier := apiretry.ClassifierFunc(func(err error) bool {
			return errors.Is(err, sentinel)
		})

		Expect(classifier.IsRetryable(sentinel)).To(BeTrue())
		Expect(classifier.IsRetryable(errors.New("other"))).To(BeFalse())
	})
})

var _ = Describe("DefaultErrorClassifier", func() {
	It("classifies by message with the standard pattern set", func() {
		classifier := apiretry.DefaultErrorClassifier()

		Expect(classifier.IsRetryable(errors.New("429 Too Many Requests"))).To(BeTrue())
		Expect(classifier.IsRetryable(errors.New("400 Bad Request"))).To(BeFalse())
	})
})
