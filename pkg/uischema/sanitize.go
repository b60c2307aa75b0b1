package uischema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
	textPolicy     = bluemonday.StrictPolicy()
)

// sanitizeHelpHTML keeps inline formatting and safe links.
func sanitizeHelpHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(trimmed))
}

// helpPlainText strips all markup, for terminals and attributes.
func helpPlainText(raw string) string {
	stripped := textPolicy.Sanitize(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "br", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}
