package widgets

import (
	"testing"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:    model.FieldTypeBoolean,
		UIHints: map[string]string{"widget": "switch"},
	}

	if got, ok := reg.Resolve(field); !ok || got != "switch" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{name: "boolean toggle", field: model.Field{Type: model.FieldTypeBoolean}, expect: WidgetToggle},
		{name: "enum select", field: model.Field{Type: model.FieldTypeString, Enum: []any{"WPA", "WEP"}}, expect: WidgetSelect},
		{name: "colour", field: model.Field{Type: model.FieldTypeString, Format: model.FormatColor}, expect: WidgetColor},
		{name: "password", field: model.Field{Type: model.FieldTypeString, Format: model.FormatPassword}, expect: WidgetPassword},
		{name: "textarea", field: model.Field{Type: model.FieldTypeString, Format: model.FormatTextarea}, expect: WidgetTextarea},
		{name: "plain input", field: model.Field{Type: model.FieldTypeString}, expect: WidgetInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(model.Field) bool { return true }
	reg.Register("first", 10, always)
	reg.Register("second", 10, always)
	reg.Register("", 99, always)
	reg.Register("nil", 99, nil)

	if got, _ := reg.Resolve(model.Field{}); got != "first" {
		t.Fatalf("tie should fall back to registration order, got %q", got)
	}

	reg.Register("urgent", 20, always)
	if got, _ := reg.Resolve(model.Field{}); got != "urgent" {
		t.Fatalf("higher priority should win, got %q", got)
	}

	if _, ok := (&Registry{}).Resolve(model.Field{}); ok {
		t.Fatalf("empty registry must not resolve")
	}
}

func TestDecorate_SetsWidgetHints(t *testing.T) {
	form, err := model.NewBuilder().Build(content.WiFi)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	want := map[string]string{
		"ssid":            WidgetInput,
		"encryption":      WidgetSelect,
		"password":        WidgetPassword,
		"hidden":          WidgetToggle,
		model.StyleModule: WidgetSelect,
		model.StyleFill:   WidgetColor,
		model.StyleFormat: WidgetSelect,
	}
	for name, widget := range want {
		field, ok := form.Field(name)
		if !ok {
			t.Fatalf("field %q missing", name)
		}
		if field.UIHints["widget"] != widget || field.Metadata["widget"] != widget {
			t.Fatalf("field %q widget = %q/%q, want %q", name, field.UIHints["widget"], field.Metadata["widget"], widget)
		}
	}
}
