package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/render/template"
	"github.com/goliatone/go-qrform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-qrform/pkg/widgets"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	widgets   *widgets.Registry
	options   render.RenderOptions

	used []string
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, widgetRegistry *widgets.Registry, options render.RenderOptions) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if widgetRegistry == nil {
		widgetRegistry = widgets.NewRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		widgets:   widgetRegistry,
		options:   options,
	}
}

func (r *componentRenderer) render(field model.Field) (string, error) {
	componentName := strings.TrimSpace(field.UIHints["widget"])
	if componentName == "" {
		componentName, _ = r.widgets.Resolve(field)
	}
	if componentName == "" {
		componentName = components.NameInput
	}

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	messages := r.options.Errors[field.Name]
	data := components.ComponentData{
		Template: r.templates,
		ID:       componentControlID(field.Name),
		Value:    r.value(field),
		Invalid:  len(messages) > 0,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.Name, err)
	}
	r.markUsed(descriptor.Name)

	return buildFieldMarkup(field, componentName, control.String(), messages), nil
}

func (r *componentRenderer) value(field model.Field) any {
	if value, ok := r.options.Values[field.Name]; ok {
		return value
	}
	return field.Default
}

func (r *componentRenderer) markUsed(name string) {
	for _, existing := range r.used {
		if existing == name {
			return
		}
	}
	r.used = append(r.used, name)
}

func (r *componentRenderer) stylesheets() []string {
	return r.registry.Stylesheets(r.used)
}

func buildFieldMarkup(field model.Field, componentName, control string, messages []string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`    <div class="`)
	builder.WriteString(string(ClassField))
	if cls := sanitizeClassList(field.UIHints["cssClass"]); cls != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(cls))
	}
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString(`">` + "\n")

	if label := strings.TrimSpace(field.Label); label != "" {
		builder.WriteString(`      <label for="`)
		builder.WriteString(html.EscapeString(componentControlID(field.Name)))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(label))
		if field.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("      ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if desc := strings.TrimSpace(field.Description); desc != "" {
		builder.WriteString(`      <small>`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString("</small>\n")
	}

	// helpHTML is sanitised by the uischema overlay before it gets here.
	if help := strings.TrimSpace(field.UIHints["helpHTML"]); help != "" {
		builder.WriteString(`      <small class="help">`)
		builder.WriteString(help)
		builder.WriteString("</small>\n")
	} else if hint := strings.TrimSpace(field.UIHints["helpText"]); hint != "" {
		builder.WriteString(`      <small class="help">`)
		builder.WriteString(html.EscapeString(hint))
		builder.WriteString("</small>\n")
	}

	if len(messages) > 0 {
		builder.WriteString(`      <ul class="qrform-field-errors">` + "\n")
		for _, message := range messages {
			builder.WriteString("        <li>")
			builder.WriteString(html.EscapeString(message))
			builder.WriteString("</li>\n")
		}
		builder.WriteString("      </ul>\n")
	}

	builder.WriteString("    </div>\n")
	return builder.String()
}
