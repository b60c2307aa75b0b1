package style

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-qrform/pkg/content"
)

func TestParseShape(t *testing.T) {
	cases := map[string]Shape{
		"":                Square,
		"square":          Square,
		"Gapped Square":   Gapped,
		"gapped":          Gapped,
		"CIRCLE":          Circle,
		"Rounded":         Rounded,
		"Vertical Bars":   VerticalBars,
		"horizontal bars": HorizontalBars,
		"horizontalbars":  HorizontalBars,
	}
	for input, want := range cases {
		got, err := ParseShape(input)
		if err != nil {
			t.Fatalf("ParseShape(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseShape(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseShape("hexagon"); err == nil {
		t.Fatalf("expected error for unknown shape")
	}
}

func TestShapesOrder(t *testing.T) {
	var labels []string
	for _, opt := range Shapes() {
		labels = append(labels, opt.Label)
	}
	want := []string{"Square", "Gapped Square", "Circle", "Rounded", "Vertical Bars", "Horizontal Bars"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{in: "#000000", want: Black},
		{in: "ffffff", want: White},
		{in: "#1a2B3c", want: RGB{0x1a, 0x2b, 0x3c}},
		{in: "#abc", want: RGB{0xaa, 0xbb, 0xcc}},
	}
	for _, tc := range cases {
		got, err := ParseHex(tc.in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseHex(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "#12", "#gggggg", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("ParseHex(%q) expected error", bad)
		}
	}
	if got := (RGB{17, 34, 51}).Hex(); got != "#112233" {
		t.Fatalf("Hex() = %s", got)
	}
}

func TestOptionsJSON(t *testing.T) {
	opts := Default()
	payload := `{"module":"Vertical Bars","eye":"circle","fill":[17,34,51],"back":"#fafafa","format":"JPG"}`
	if err := json.Unmarshal([]byte(payload), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Options{Module: VerticalBars, Eye: Circle, Fill: RGB{17, 34, 51}, Back: RGB{0xfa, 0xfa, 0xfa}, Format: JPEG}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"module":"verticalbars","eye":"circle","fill":"#112233","back":"#fafafa","format":"jpeg"}` {
		t.Fatalf("marshal = %s", out)
	}

	for _, bad := range []string{`{"fill":[1,2]}`, `{"fill":[1,2,300]}`, `{"module":"star"}`, `{"format":"gif"}`} {
		o := Default()
		if err := json.Unmarshal([]byte(bad), &o); err == nil {
			t.Fatalf("expected error for %s", bad)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}

	cases := []struct {
		name  string
		opts  Options
		field string
	}{
		{name: "module", opts: Options{Module: "star", Eye: Square, Fill: Black, Back: White, Format: PNG}, field: "style.module"},
		{name: "eye", opts: Options{Module: Square, Eye: "x", Fill: Black, Back: White, Format: PNG}, field: "style.eye"},
		{name: "format", opts: Options{Module: Square, Eye: Square, Fill: Black, Back: White, Format: "gif"}, field: "style.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *content.ValidationError
			if err := tc.opts.Validate(); !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("Validate() = %v, want field %s", err, tc.field)
			}
		})
	}
}

func TestValidateLeavesColoursToTheCaller(t *testing.T) {
	opts := Options{Module: Square, Eye: Square, Fill: White, Back: White, Format: PNG}
	if err := opts.Validate(); err != nil {
		t.Fatalf("identical colours are a styling choice, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	got := Options{Fill: Black, Back: White}.Normalize()
	if got.Module != Square || got.Eye != Square || got.Format != PNG {
		t.Fatalf("Normalize() = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	if JPEG.ContentType() != "image/jpeg" || JPEG.Extension() != ".jpeg" {
		t.Fatalf("jpeg metadata wrong")
	}
	if PNG.ContentType() != "image/png" || PNG.Extension() != ".png" || PNG.Label() != "PNG" {
		t.Fatalf("png metadata wrong")
	}
}

func TestPalettesResolve(t *testing.T) {
	palettes := DefaultPalettes()
	if diff := cmp.Diff([]string{"classic", "forest", "ocean", "sunset"}, palettes.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	fill, back, err := palettes.Resolve("classic", "")
	if err != nil || fill != Black || back != White {
		t.Fatalf("classic = %v %v %v", fill, back, err)
	}
	fill, back, err = palettes.Resolve("classic", "inverted")
	if err != nil || fill != White || back != Black {
		t.Fatalf("classic/inverted = %v %v %v", fill, back, err)
	}

	if _, _, err := palettes.Resolve("neon", ""); err == nil {
		t.Fatalf("expected unknown palette error")
	}
	if _, _, err := palettes.Resolve("ocean", "dark"); err == nil {
		t.Fatalf("expected unknown variant error")
	}

	opts, err := palettes.Apply(Default(), "ocean", "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if opts.Fill.Hex() != "#0b3d91" || opts.Module != Square {
		t.Fatalf("Apply() = %+v", opts)
	}
}

func TestNewPalettesRejectsMissingTokens(t *testing.T) {
	_, err := NewPalettes(&theme.Manifest{
		Name:    "broken",
		Version: "1.0.0",
		Tokens:  map[string]string{TokenFill: "#000000"},
	})
	if err == nil {
		t.Fatalf("expected error for palette without background token")
	}
}

func TestPalettesSatisfyThemeSelector(t *testing.T) {
	var selector theme.ThemeSelector = DefaultPalettes()
	sel, err := selector.Select("forest", "inverted")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Theme != "forest" || sel.Variant != "inverted" || sel.Manifest == nil {
		t.Fatalf("selection = %+v", sel)
	}
}
