package vanilla

import "strings"

var idReplacer = strings.NewReplacer(".", "-", " ", "-")

// componentControlID matches the "domid" template filter with the "qr" prefix.
func componentControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "qr-" + idReplacer.Replace(trimmed)
}

func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "qrform-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func hintOr(hints map[string]string, key, fallback string) string {
	if value := strings.TrimSpace(hints[key]); value != "" {
		return value
	}
	return fallback
}
