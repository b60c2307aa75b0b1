package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/style"
)

const (
	styleSchemaName      = "Style"
	requestSchemaName    = "BuildRequest"
	descriptorSchemaName = "TypeDescriptor"
	errorSchemaName      = "Error"
	payloadSchemaName    = "PayloadResult"

	// ExtensionFieldOrder lists property names in display order.
	ExtensionFieldOrder = "x-field-order"
	// ExtensionFieldSchemas maps type ids to their fields schema.
	ExtensionFieldSchemas = "x-field-schemas"
)

const colourPattern = `^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`

func schemaName(id content.TypeID) string {
	return id.Label() + "Fields"
}

// SchemaRef returns the component reference for the fields of id.
func SchemaRef(id content.TypeID) string {
	return "#/components/schemas/" + schemaName(id)
}

func fieldsSchema(id content.TypeID) (*openapi3.Schema, error) {
	specs, err := content.Fields(id)
	if err != nil {
		return nil, fmt.Errorf("openapi: fields for %s: %w", id, err)
	}

	schema := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	schema.Title = id.Label() + " fields"
	order := make([]any, 0, len(specs))
	var required []string
	for _, spec := range specs {
		schema.WithProperty(spec.Name, fieldSchema(spec))
		order = append(order, spec.Name)
		if spec.Required && spec.Kind != content.Boolean {
			required = append(required, spec.Name)
		}
	}
	schema.Required = required
	schema.Extensions = map[string]any{ExtensionFieldOrder: order}
	return schema, nil
}

func fieldSchema(spec content.FieldSpec) *openapi3.Schema {
	var schema *openapi3.Schema
	switch spec.Kind {
	case content.Boolean:
		schema = openapi3.NewBoolSchema()
	case content.Enum:
		values := make([]any, 0, len(spec.Options))
		for _, option := range spec.Options {
			values = append(values, option)
		}
		schema = openapi3.NewStringSchema().WithEnum(values...)
		if spec.Default != "" {
			schema.WithDefault(spec.Default)
		}
	case content.Password:
		schema = openapi3.NewStringSchema().WithFormat("password")
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = spec.Label
	if spec.Required && spec.Kind != content.Boolean && spec.Kind != content.Enum {
		schema.WithMinLength(1)
	}
	return schema
}

func styleSchema() *openapi3.Schema {
	shapes := make([]any, 0, len(style.Shapes()))
	for _, option := range style.Shapes() {
		shapes = append(shapes, string(option.Shape))
	}
	formats := make([]any, 0, len(style.Formats()))
	for _, f := range style.Formats() {
		formats = append(formats, string(f))
	}
	palettes := style.DefaultPalettes()
	names := make([]any, 0)
	for _, name := range palettes.Names() {
		names = append(names, name)
	}

	colour := func(title string, def style.RGB) *openapi3.Schema {
		s := openapi3.NewStringSchema().WithPattern(colourPattern).WithDefault(def.Hex())
		s.Title = title
		s.Description = "Hex colour. The JSON API also accepts an [r, g, b] array."
		return s
	}

	defaults := style.Default()
	schema := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	schema.Title = "Style options"
	schema.WithProperty("module", openapi3.NewStringSchema().WithEnum(shapes...).WithDefault(string(defaults.Module)))
	schema.WithProperty("eye", openapi3.NewStringSchema().WithEnum(shapes...).WithDefault(string(defaults.Eye)))
	schema.WithProperty("fill", colour("Foreground", defaults.Fill))
	schema.WithProperty("back", colour("Background", defaults.Back))
	schema.WithProperty("format", openapi3.NewStringSchema().WithEnum(formats...).WithDefault(string(defaults.Format)))
	if len(names) > 0 {
		schema.WithProperty("palette", openapi3.NewStringSchema().WithEnum(names...))
	} else {
		schema.WithProperty("palette", openapi3.NewStringSchema())
	}
	schema.WithProperty("variant", openapi3.NewStringSchema())
	return schema
}

// requestSchema keeps "fields" a plain object; x-field-schemas points at the
// per-type component describing it.
func requestSchema(components openapi3.Schemas) *openapi3.Schema {
	ids := make([]any, 0, len(content.Types()))
	refs := make(map[string]any, len(content.Types()))
	for _, id := range content.Types() {
		ids = append(ids, id.String())
		refs[id.String()] = SchemaRef(id)
	}

	fields := openapi3.NewObjectSchema()
	fields.Description = "Field values for the selected type, see " + ExtensionFieldSchemas + "."
	fields.Extensions = map[string]any{ExtensionFieldSchemas: refs}

	schema := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	schema.WithProperty("type", openapi3.NewStringSchema().WithEnum(ids...))
	schema.WithProperty("fields", fields)
	schema.WithPropertyRef("style", &openapi3.SchemaRef{
		Ref:   "#/components/schemas/" + styleSchemaName,
		Value: components[styleSchemaName].Value,
	})
	schema.WithProperty("filename", openapi3.NewStringSchema())
	schema.Required = []string{"type", "fields"}
	return schema
}

func descriptorSchema() *openapi3.Schema {
	kinds := []any{}
	for _, kind := range []content.FieldKind{content.ShortText, content.MultiLineText, content.Password, content.Boolean, content.Enum} {
		kinds = append(kinds, kind.String())
	}

	field := openapi3.NewObjectSchema()
	field.WithProperty("name", openapi3.NewStringSchema())
	field.WithProperty("label", openapi3.NewStringSchema())
	field.WithProperty("kind", openapi3.NewStringSchema().WithEnum(kinds...))
	field.WithProperty("required", openapi3.NewBoolSchema())
	field.WithProperty("options", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	field.WithProperty("default", openapi3.NewStringSchema())
	field.Required = []string{"name", "label", "kind", "required"}

	schema := openapi3.NewObjectSchema()
	schema.WithProperty("id", openapi3.NewStringSchema())
	schema.WithProperty("label", openapi3.NewStringSchema())
	schema.WithProperty("fields", openapi3.NewArraySchema().WithItems(field))
	schema.Required = []string{"id", "label", "fields"}
	return schema
}

func errorSchema() *openapi3.Schema {
	detail := openapi3.NewObjectSchema()
	detail.WithProperty("kind", openapi3.NewStringSchema().WithEnum("validation", "unknown_type", "encoding", "malformed", "internal"))
	detail.WithProperty("field", openapi3.NewStringSchema())
	detail.WithProperty("message", openapi3.NewStringSchema())
	detail.Required = []string{"kind", "message"}

	schema := openapi3.NewObjectSchema()
	schema.WithProperty("error", detail)
	schema.Required = []string{"error"}
	return schema
}

func payloadSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.WithProperty("type", openapi3.NewStringSchema())
	schema.WithProperty("payload", openapi3.NewStringSchema())
	schema.Required = []string{"type", "payload"}
	return schema
}
