package uischema

import (
	"strings"

	pkgmodel "github.com/goliatone/go-qrform/pkg/model"
)

// Decorator applies one locale's overlay to a form model.
type Decorator struct {
	store  *Store
	locale string
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator for locale. When store is nil or lacks the
// locale, the decorator becomes a no-op.
func NewDecorator(store *Store, locale string) *Decorator {
	return &Decorator{store: store, locale: locale}
}

// Decorate augments form with titles, labels and help text. Fields the
// overlay does not mention are left untouched.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || form == nil {
		return nil
	}
	doc, ok := d.store.Document(d.locale)
	if !ok {
		return nil
	}

	typeID := strings.ToLower(form.OperationID)
	applyFormConfig(form, doc, typeID)

	for idx := range form.Fields {
		applyFieldConfig(&form.Fields[idx], doc.field(typeID, form.Fields[idx].Name))
	}
	return nil
}

func applyFormConfig(form *pkgmodel.FormModel, doc Document, typeID string) {
	form.UIHints = ensureUIHints(form.UIHints)
	form.UIHints["locale"] = doc.Locale

	if typ, ok := doc.Types[typeID]; ok {
		if typ.Title != "" {
			form.Summary = typ.Title
		}
		if typ.Description != "" {
			form.Description = typ.Description
		}
	}
	if doc.Form.SubmitLabel != "" {
		form.UIHints["submitLabel"] = doc.Form.SubmitLabel
	}
	if doc.Form.DownloadLabel != "" {
		form.UIHints["downloadLabel"] = doc.Form.DownloadLabel
	}
	for section, title := range doc.Form.Sections {
		if title != "" {
			form.UIHints["section."+section] = title
		}
	}
}

func applyFieldConfig(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	for idx, option := range field.Options {
		if label := cfg.Options[option.Value]; label != "" {
			field.Options[idx].Label = label
		}
	}

	hints := make(map[string]string, len(cfg.UIHints)+4)
	for k, v := range cfg.UIHints {
		hints[k] = v
	}
	if cfg.HelpText != "" {
		hints["helpHTML"] = cfg.HelpText
		hints["helpText"] = helpPlainText(cfg.HelpText)
	}
	if cfg.Widget != "" {
		hints["widget"] = cfg.Widget
	}
	if cfg.CSSClass != "" {
		hints["cssClass"] = cfg.CSSClass
	}
	if len(hints) == 0 {
		return
	}
	field.UIHints = ensureUIHints(field.UIHints)
	for k, v := range hints {
		field.UIHints[k] = v
	}
}

func ensureUIHints(hints map[string]string) map[string]string {
	if hints == nil {
		return make(map[string]string)
	}
	return hints
}
