package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-qrform/pkg/model"
)

const (
	templatePrefix = "templates/components/"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	for _, name := range []string{NameInput, NameTextarea, NamePassword, NameSelect, NameToggle, NameColor} {
		registry.MustRegister(name, Descriptor{
			Renderer: templateComponentRenderer(templatePrefix + name + ".tmpl"),
		})
	}
	return registry
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		payload := map[string]any{
			"field":   field,
			"id":      data.ID,
			"value":   data.Value,
			"invalid": data.Invalid,
		}
		rendered, err := data.Template.RenderTemplate(templateName, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
