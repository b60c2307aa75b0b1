package dispatcher

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/style"
)

// WireRequest is the JSON shape accepted by the CLI and HTTP API:
//
//	{"type": "wifi", "fields": {"ssid": "lab"}, "style": {"module": "circle", "fill": "#112233"}}
type WireRequest struct {
	Type     string         `json:"type"`
	Fields   content.Values `json:"fields"`
	Style    *WireStyle     `json:"style,omitempty"`
	Filename string         `json:"filename,omitempty"`
}

// WireStyle is the JSON shape of style options. Colours accept "#rrggbb" or
// [r, g, b]. A palette sets both colours; explicit colours override it.
type WireStyle struct {
	Module  string          `json:"module,omitempty"`
	Eye     string          `json:"eye,omitempty"`
	Fill    json.RawMessage `json:"fill,omitempty"`
	Back    json.RawMessage `json:"back,omitempty"`
	Format  string          `json:"format,omitempty"`
	Palette string          `json:"palette,omitempty"`
	Variant string          `json:"variant,omitempty"`
}

// DecodeRequest reads a WireRequest from r. Syntax errors and unknown keys
// wrap ErrMalformedRequest; bad values surface as content errors.
func DecodeRequest(r io.Reader, palettes *style.Palettes) (Request, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var wire WireRequest
	if err := dec.Decode(&wire); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return wire.Request(palettes)
}

// Request converts the wire form into a typed Request.
func (w WireRequest) Request(palettes *style.Palettes) (Request, error) {
	id, err := content.ParseTypeID(w.Type)
	if err != nil {
		return Request{}, err
	}
	opts, err := w.Style.Options(palettes)
	if err != nil {
		return Request{}, err
	}
	values := w.Fields
	if values == nil {
		values = content.Values{}
	}
	return Request{Type: id, Values: values, Style: opts, Filename: w.Filename}, nil
}

// WireStyleFromMap reads style inputs keyed by their short name ("module",
// "fill", ...), as collected from HTML forms and terminal prompts. Colours
// are hex strings; blank entries keep the defaults.
func WireStyleFromMap(values map[string]string) *WireStyle {
	w := &WireStyle{
		Module:  values["module"],
		Eye:     values["eye"],
		Format:  values["format"],
		Palette: values["palette"],
		Variant: values["variant"],
	}
	if fill := values["fill"]; fill != "" {
		w.Fill, _ = json.Marshal(fill)
	}
	if back := values["back"]; back != "" {
		w.Back, _ = json.Marshal(back)
	}
	return w
}

// Options resolves the wire style, starting from style.Default. A nil
// receiver yields the defaults.
func (w *WireStyle) Options(palettes *style.Palettes) (style.Options, error) {
	opts := style.Default()
	if w == nil {
		return opts, nil
	}

	var err error
	if opts.Module, err = style.ParseShape(w.Module); err != nil {
		return opts, &content.ValidationError{Field: "style.module", Reason: err.Error()}
	}
	if opts.Eye, err = style.ParseShape(w.Eye); err != nil {
		return opts, &content.ValidationError{Field: "style.eye", Reason: err.Error()}
	}
	if opts.Format, err = style.ParseFormat(w.Format); err != nil {
		return opts, &content.ValidationError{Field: "style.format", Reason: err.Error()}
	}
	if w.Palette != "" {
		if palettes == nil {
			palettes = style.DefaultPalettes()
		}
		if opts, err = palettes.Apply(opts, w.Palette, w.Variant); err != nil {
			return opts, &content.ValidationError{Field: "style.palette", Reason: err.Error()}
		}
	}
	if err := decodeColour(w.Fill, &opts.Fill); err != nil {
		return opts, &content.ValidationError{Field: "style.fill", Reason: err.Error()}
	}
	if err := decodeColour(w.Back, &opts.Back); err != nil {
		return opts, &content.ValidationError{Field: "style.back", Reason: err.Error()}
	}
	return opts, nil
}

func decodeColour(raw json.RawMessage, dst *style.RGB) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return dst.UnmarshalJSON(raw)
}
