package sanitize

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

type strict struct{}

// Strict returns a sanitizer that strips every HTML element from a body and
// keeps its text. Entities produced by the policy are decoded again so plain
// characters survive for later sanitizers in a Chain.
func Strict() Sanitizer { return strict{} }

func (strict) Sanitize(text string, _ Group) string {
	if text == "" {
		return text
	}
	return html.UnescapeString(strictSanitizer().Sanitize(text))
}

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
