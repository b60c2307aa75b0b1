package model

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/style"
)

// Style field names appended after the content fields.
const (
	StyleModule = "style.module"
	StyleEye    = "style.eye"
	StyleFill   = "style.fill"
	StyleBack   = "style.back"
	StyleFormat = "style.format"
)

// Builder converts content types into form models.
type Builder interface {
	Build(id content.TypeID) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builder)

type builder struct {
	endpoint func(content.TypeID) string
	labeler  func(content.FieldSpec) string
	style    bool
	defaults style.Options
}

// WithEndpoint overrides the form action. The default posts back to
// "/types/<id>".
func WithEndpoint(fn func(content.TypeID) string) BuilderOption {
	return func(b *builder) {
		if fn != nil {
			b.endpoint = fn
		}
	}
}

// WithLabeler overrides the default label taken from the field descriptor.
func WithLabeler(fn func(content.FieldSpec) string) BuilderOption {
	return func(b *builder) {
		if fn != nil {
			b.labeler = fn
		}
	}
}

// WithStyleSection toggles the style controls. Enabled by default.
func WithStyleSection(enabled bool) BuilderOption {
	return func(b *builder) {
		b.style = enabled
	}
}

// WithStyleDefaults sets the values pre-selected in the style section.
func WithStyleDefaults(opts style.Options) BuilderOption {
	return func(b *builder) {
		b.defaults = opts.Normalize()
	}
}

// NewBuilder returns a Builder backed by the content registry.
func NewBuilder(options ...BuilderOption) Builder {
	b := &builder{
		endpoint: func(id content.TypeID) string { return "/types/" + id.String() },
		labeler:  func(spec content.FieldSpec) string { return spec.Label },
		style:    true,
		defaults: style.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build maps the ordered field descriptors of id into a FormModel.
func (b *builder) Build(id content.TypeID) (FormModel, error) {
	specs, err := content.Fields(id)
	if err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: id.String(),
		Endpoint:    b.endpoint(id),
		Method:      http.MethodPost,
		Summary:     id.Label(),
		Metadata:    map[string]string{"content.type": id.String()},
	}

	for _, spec := range specs {
		field, err := b.fieldFromSpec(spec)
		if err != nil {
			return FormModel{}, fmt.Errorf("model: %s field %q: %w", id, spec.Name, err)
		}
		form.Fields = append(form.Fields, field)
	}
	if b.style {
		form.Fields = append(form.Fields, b.styleFields()...)
	}
	return form, nil
}

func (b *builder) fieldFromSpec(spec content.FieldSpec) (Field, error) {
	field := Field{
		Name:     spec.Name,
		Type:     FieldTypeString,
		Required: spec.Required,
		Label:    b.labeler(spec),
		Section:  SectionContent,
		Metadata: map[string]string{"kind": spec.Kind.String()},
	}

	switch spec.Kind {
	case content.ShortText:
	case content.MultiLineText:
		field.Format = FormatTextarea
	case content.Password:
		field.Format = FormatPassword
	case content.Boolean:
		field.Type = FieldTypeBoolean
		field.Default = false
	case content.Enum:
		for _, option := range spec.Options {
			field.Enum = append(field.Enum, option)
			field.Options = append(field.Options, Option{Value: option, Label: option})
		}
		if spec.Default != "" {
			field.Default = spec.Default
		}
	default:
		return Field{}, fmt.Errorf("unsupported kind %s", spec.Kind)
	}

	if spec.Required && field.Type == FieldTypeString {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": "1"},
		})
	}
	return field, nil
}

func (b *builder) styleFields() []Field {
	shapeOptions := func() ([]any, []Option) {
		var enum []any
		var opts []Option
		for _, s := range style.Shapes() {
			enum = append(enum, string(s.Shape))
			opts = append(opts, Option{Value: string(s.Shape), Label: s.Label})
		}
		return enum, opts
	}

	moduleEnum, moduleOpts := shapeOptions()
	eyeEnum, eyeOpts := shapeOptions()

	var formatEnum []any
	var formatOpts []Option
	for _, f := range style.Formats() {
		formatEnum = append(formatEnum, string(f))
		formatOpts = append(formatOpts, Option{Value: string(f), Label: f.Label()})
	}

	hexRule := []ValidationRule{{
		Kind:   ValidationRulePattern,
		Params: map[string]string{"pattern": "^#[0-9a-fA-F]{6}$"},
	}}

	return []Field{
		{
			Name: StyleModule, Type: FieldTypeString, Required: true, Label: "Module style",
			Section: SectionStyle, Enum: moduleEnum, Options: moduleOpts, Default: string(b.defaults.Module),
		},
		{
			Name: StyleEye, Type: FieldTypeString, Required: true, Label: "Eye style",
			Section: SectionStyle, Enum: eyeEnum, Options: eyeOpts, Default: string(b.defaults.Eye),
		},
		{
			Name: StyleFill, Type: FieldTypeString, Format: FormatColor, Required: true, Label: "Fill colour",
			Section: SectionStyle, Default: b.defaults.Fill.Hex(), Validations: hexRule,
		},
		{
			Name: StyleBack, Type: FieldTypeString, Format: FormatColor, Required: true, Label: "Background colour",
			Section: SectionStyle, Default: b.defaults.Back.Hex(), Validations: hexRule,
		},
		{
			Name: StyleFormat, Type: FieldTypeString, Required: true, Label: "File type",
			Section: SectionStyle, Enum: formatEnum, Options: formatOpts, Default: string(b.defaults.Format),
		},
	}
}
