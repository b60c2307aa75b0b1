package render

import (
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
)

// ErrorMapping splits validation feedback into field-level and form-level
// messages keyed by field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapError turns a build error into display messages. Validation errors land
// on their field when the form has it; everything else is form-level.
func MapError(form model.FormModel, err error) ErrorMapping {
	if err == nil {
		return ErrorMapping{}
	}
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		return MapValidationErrors(form, []*content.ValidationError{verr})
	}
	return ErrorMapping{Form: normalizeMessages([]string{err.Error()})}
}

// MapValidationErrors maps every problem onto the form.
func MapValidationErrors(form model.FormModel, problems []*content.ValidationError) ErrorMapping {
	payload := make(map[string][]string, len(problems))
	for _, p := range problems {
		if p == nil {
			continue
		}
		payload[p.Field] = append(payload[p.Field], fieldMessage(form, p))
	}
	return MapErrorPayload(form, payload)
}

// MapErrorPayload normalises error payloads keyed by field path (including
// JSON pointer and "fields." prefixed forms) into field names. Unknown paths
// are treated as form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}

	for _, field := range orderedKeys(form, payload) {
		messages := normalizeMessages(payload[field])
		if len(messages) == 0 {
			continue
		}
		name := normalizePath(field)
		if _, ok := known[name]; !ok || isFormLevelKey(field) {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// orderedKeys lists payload keys in form field order, then the rest sorted,
// so form-level messages come out deterministically.
func orderedKeys(form model.FormModel, payload map[string][]string) []string {
	seen := make(map[string]bool, len(payload))
	keys := make([]string, 0, len(payload))
	for _, field := range form.Fields {
		for key := range payload {
			if !seen[key] && normalizePath(key) == field.Name {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	var rest []string
	for key := range payload {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func fieldMessage(form model.FormModel, p *content.ValidationError) string {
	reason := strings.TrimSpace(p.Reason)
	if strings.HasPrefix(reason, "is ") || strings.HasPrefix(reason, "must ") {
		label := p.Field
		if field, ok := form.Field(p.Field); ok && field.Label != "" {
			label = field.Label
		}
		return label + " " + reason
	}
	return upperFirst(reason)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func normalizePath(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.ReplaceAll(clean, "/", ".")
	for _, wrapper := range []string{"body.", "fields.", "request.", "payload.", "data."} {
		clean = strings.TrimPrefix(clean, wrapper)
	}
	return clean
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
