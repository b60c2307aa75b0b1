package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
)

// HiddenField represents a hidden form input emitted alongside the visible
// schema.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}

// StylePrefix marks style inputs in a posted form.
const StylePrefix = "style."

// Submission is a posted HTML form split into content values and style
// inputs.
type Submission struct {
	// Values holds the content section keyed by field name.
	Values content.Values
	// Style holds style inputs keyed without the "style." prefix.
	Style map[string]string
	// Raw echoes every known field for re-rendering the form.
	Raw map[string]any
}

// DecodeSubmission reads posted form values for the fields in form. Boolean
// fields follow checkbox semantics: absent means false. Inputs the form does
// not declare are ignored.
func DecodeSubmission(form model.FormModel, posted url.Values) Submission {
	sub := Submission{
		Values: content.Values{},
		Style:  map[string]string{},
		Raw:    map[string]any{},
	}

	for _, field := range form.Fields {
		values, present := posted[field.Name]
		var raw any
		switch field.Type {
		case model.FieldTypeBoolean:
			raw = present && checked(values)
		default:
			if !present {
				continue
			}
			raw = last(values)
		}

		sub.Raw[field.Name] = raw
		if name, ok := strings.CutPrefix(field.Name, StylePrefix); ok {
			if s, ok := raw.(string); ok {
				sub.Style[name] = strings.TrimSpace(s)
			}
			continue
		}
		sub.Values[field.Name] = raw
	}

	for _, extra := range []string{"palette", "variant"} {
		if value := strings.TrimSpace(posted.Get(StylePrefix + extra)); value != "" {
			sub.Style[extra] = value
		}
	}
	return sub
}

// SubmissionFromValues splits already typed values, such as terminal prompt
// answers, the same way DecodeSubmission splits a posted form.
func SubmissionFromValues(form model.FormModel, values map[string]any) Submission {
	sub := Submission{
		Values: content.Values{},
		Style:  map[string]string{},
		Raw:    map[string]any{},
	}
	for _, field := range form.Fields {
		raw, ok := values[field.Name]
		if !ok {
			continue
		}
		sub.Raw[field.Name] = raw
		if name, ok := strings.CutPrefix(field.Name, StylePrefix); ok {
			sub.Style[name] = strings.TrimSpace(fmt.Sprint(raw))
			continue
		}
		sub.Values[field.Name] = raw
	}
	return sub
}

// checked treats a hidden "false" companion followed by "on" as true.
func checked(values []string) bool {
	if len(values) == 0 {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(last(values))) {
	case "", "false", "off", "0", "no":
		return false
	default:
		return true
	}
}

func last(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
