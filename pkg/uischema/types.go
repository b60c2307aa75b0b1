package uischema

// Document is the overlay for one locale.
type Document struct {
	Locale string                 `json:"locale" yaml:"locale"`
	Form   FormConfig             `json:"form" yaml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
	Types  map[string]TypeConfig  `json:"types" yaml:"types"`
}

// FormConfig holds copy shared by every form.
type FormConfig struct {
	SubmitLabel   string            `json:"submitLabel" yaml:"submitLabel"`
	DownloadLabel string            `json:"downloadLabel" yaml:"downloadLabel"`
	Sections      map[string]string `json:"sections" yaml:"sections"`
}

// TypeConfig holds the copy for one content type. Field entries override the
// document-wide ones.
type TypeConfig struct {
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description" yaml:"description"`
	Fields      map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// FieldConfig customises a single field.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	CSSClass    string            `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Options     map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// field returns the merged configuration for name within typeID.
func (d Document) field(typeID, name string) FieldConfig {
	merged := d.Fields[name]
	override, ok := d.Types[typeID].Fields[name]
	if !ok {
		return merged
	}
	if override.Label != "" {
		merged.Label = override.Label
	}
	if override.Placeholder != "" {
		merged.Placeholder = override.Placeholder
	}
	if override.Description != "" {
		merged.Description = override.Description
	}
	if override.HelpText != "" {
		merged.HelpText = override.HelpText
	}
	if override.Widget != "" {
		merged.Widget = override.Widget
	}
	if override.CSSClass != "" {
		merged.CSSClass = override.CSSClass
	}
	merged.Options = mergeStringMap(merged.Options, override.Options)
	merged.UIHints = mergeStringMap(merged.UIHints, override.UIHints)
	return merged
}

func mergeStringMap(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
