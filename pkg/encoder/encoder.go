// Package encoder turns payload strings into styled QR raster images. The
// symbol matrix comes from skip2/go-qrcode; modules are drawn with
// golang.org/x/image/vector so every shape is anti-aliased, then written as
// PNG or JPEG.
package encoder

import (
	"context"
	"errors"

	"github.com/goliatone/go-qrform/pkg/style"
)

// Encoder renders a payload with the given style options.
type Encoder interface {
	Encode(ctx context.Context, payload string, opts style.Options) ([]byte, error)
}

// Func adapts a function into an Encoder.
type Func func(ctx context.Context, payload string, opts style.Options) ([]byte, error)

// Encode calls the underlying function.
func (fn Func) Encode(ctx context.Context, payload string, opts style.Options) ([]byte, error) {
	return fn(ctx, payload, opts)
}

var (
	ErrEmptyPayload      = errors.New("encoder: empty payload")
	ErrUnsupportedFormat = errors.New("encoder: unsupported output format")
	ErrUnsupportedShape  = errors.New("encoder: unsupported shape")
)
