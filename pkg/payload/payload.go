package payload

import (
	"net/url"
	"strings"
)

// SMS returns an RFC 5724 sms URI. The body parameter is dropped when the
// message is empty.
func SMS(phone, message string) string {
	if message == "" {
		return "sms:" + phone
	}
	return "sms:" + phone + "?body=" + escapeQuery(message)
}

// Mailto returns an RFC 6068 mailto URI with optional subject and body.
func Mailto(address, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(address)

	sep := "?"
	if subject != "" {
		b.WriteString(sep + "subject=" + escapeQuery(subject))
		sep = "&"
	}
	if body != "" {
		b.WriteString(sep + "body=" + escapeQuery(body))
	}
	return b.String()
}

// Geo joins latitude and longitude into a geo URI without re-formatting the
// numbers.
func Geo(latitude, longitude string) string {
	return "geo:" + latitude + "," + longitude
}

// escapeQuery percent-encodes a URI query value. Spaces become %20, the form
// RFC 6068 requires, instead of the `+` url.QueryEscape emits. Literal plus
// signs are already encoded as %2B at that point.
func escapeQuery(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
