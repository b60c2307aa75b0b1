package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
)

// Formats refine FieldTypeString inputs.
const (
	FormatTextarea = "textarea"
	FormatPassword = "password"
	FormatColor    = "color"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRulePattern   = "pattern"
)

// Sections group fields in rendered forms.
const (
	SectionContent = "content"
	SectionStyle   = "style"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"]; pattern rules keep
// the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is one choice of an enumerated field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input inside a generated form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Section     string            `json:"section,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level representation renderers consume. OperationID
// carries the content type identifier.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Section returns the fields assigned to name, in form order.
func (f FormModel) Section(name string) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Section == name {
			out = append(out, field)
		}
	}
	return out
}

// Field looks up a field by name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
