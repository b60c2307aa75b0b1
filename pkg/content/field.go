package content

import "fmt"

// FieldKind describes how a field is collected.
type FieldKind int

const (
	ShortText FieldKind = iota + 1
	MultiLineText
	Password
	Boolean
	Enum
)

var kindNames = map[FieldKind]string{
	ShortText:     "text",
	MultiLineText: "multiline",
	Password:      "password",
	Boolean:       "boolean",
	Enum:          "enum",
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k FieldKind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("content: unknown field kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FieldKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("content: unknown field kind %q", text)
}

// FieldSpec describes one input of a content type. Options and Default are
// only set for Enum fields.
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
	Default  string    `json:"default,omitempty"`
}

// Descriptor bundles a type with its fields for callers that render forms or
// API listings.
type Descriptor struct {
	ID     TypeID      `json:"id"`
	Label  string      `json:"label"`
	Fields []FieldSpec `json:"fields"`
}
