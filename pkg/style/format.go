package style

import (
	"fmt"
	"strings"
)

// Format is the raster output format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{PNG, JPEG}
}

// ParseFormat accepts "png", "jpeg" and "jpg" in any case. Blank input yields
// PNG.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	default:
		return "", fmt.Errorf("style: unsupported output format %q", value)
	}
}

// Valid reports whether f is supported.
func (f Format) Valid() bool {
	return f == PNG || f == JPEG
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file suffix including the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return ".jpeg"
	}
	return ".png"
}

// Label returns the upper-case display name.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
