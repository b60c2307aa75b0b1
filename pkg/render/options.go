package render

import (
	"encoding/base64"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages that do not belong to a single field.
	FormErrors []string
	// Hidden fields are emitted alongside the visible inputs.
	Hidden map[string]string
	// Locale is the language the form was localised into.
	Locale string
	// Types drives the content type navigation.
	Types []TypeLink
	// Result is set after a successful build.
	Result *Preview
}

// TypeLink is one entry of the content type navigation.
type TypeLink struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Preview describes a generated image for inline display and download.
type Preview struct {
	Payload     string `json:"payload"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
	DataURI     string `json:"dataUri"`
	Size        int    `json:"size"`
}

// NewPreview embeds data as a base64 data URI.
func NewPreview(payload, contentType, filename string, data []byte) *Preview {
	return &Preview{
		Payload:     payload,
		ContentType: contentType,
		Filename:    filename,
		DataURI:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Size:        len(data),
	}
}
