package style

import (
	"github.com/goliatone/go-qrform/pkg/content"
)

// Options carries the visual choices applied to every content type.
type Options struct {
	Module Shape  `json:"module"`
	Eye    Shape  `json:"eye"`
	Fill   RGB    `json:"fill"`
	Back   RGB    `json:"back"`
	Format Format `json:"format"`
}

// Default returns square modules and eyes, black on white, PNG output.
func Default() Options {
	return Options{
		Module: Square,
		Eye:    Square,
		Fill:   Black,
		Back:   White,
		Format: PNG,
	}
}

// Normalize fills blank shapes and format with their defaults.
func (o Options) Normalize() Options {
	if o.Module == "" {
		o.Module = Square
	}
	if o.Eye == "" {
		o.Eye = Square
	}
	if o.Format == "" {
		o.Format = PNG
	}
	return o
}

// Validate reports the first unsupported option as a content.ValidationError
// on the "style.<name>" field.
func (o Options) Validate() error {
	switch {
	case !o.Module.Valid():
		return &content.ValidationError{Field: "style.module", Reason: "unsupported shape " + string(o.Module)}
	case !o.Eye.Valid():
		return &content.ValidationError{Field: "style.eye", Reason: "unsupported shape " + string(o.Eye)}
	case !o.Format.Valid():
		return &content.ValidationError{Field: "style.format", Reason: "unsupported format " + string(o.Format)}
	}
	return nil
}
