package style

import (
	"fmt"
	"strings"
)

// Shape selects how dark modules, or the three finder patterns ("eyes"), are
// drawn.
type Shape string

const (
	Square         Shape = "square"
	Gapped         Shape = "gapped"
	Circle         Shape = "circle"
	Rounded        Shape = "rounded"
	VerticalBars   Shape = "verticalbars"
	HorizontalBars Shape = "horizontalbars"
)

// ShapeOption pairs a shape with its display label.
type ShapeOption struct {
	Shape Shape  `json:"shape"`
	Label string `json:"label"`
}

var shapeOptions = []ShapeOption{
	{Shape: Square, Label: "Square"},
	{Shape: Gapped, Label: "Gapped Square"},
	{Shape: Circle, Label: "Circle"},
	{Shape: Rounded, Label: "Rounded"},
	{Shape: VerticalBars, Label: "Vertical Bars"},
	{Shape: HorizontalBars, Label: "Horizontal Bars"},
}

// Shapes lists the supported shapes in display order.
func Shapes() []ShapeOption {
	return append([]ShapeOption(nil), shapeOptions...)
}

// Valid reports whether s is a supported shape.
func (s Shape) Valid() bool {
	for _, opt := range shapeOptions {
		if opt.Shape == s {
			return true
		}
	}
	return false
}

// Label returns the display label for s, or s itself when unknown.
func (s Shape) Label() string {
	for _, opt := range shapeOptions {
		if opt.Shape == s {
			return opt.Label
		}
	}
	return string(s)
}

// ParseShape accepts identifiers ("verticalbars") and display labels
// ("Vertical Bars") regardless of case. Blank input yields Square.
func ParseShape(value string) (Shape, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return Square, nil
	}
	compact := strings.ReplaceAll(needle, " ", "")
	for _, opt := range shapeOptions {
		if compact == string(opt.Shape) || needle == strings.ToLower(opt.Label) {
			return opt.Shape, nil
		}
	}
	return "", fmt.Errorf("style: unknown shape %q", value)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
