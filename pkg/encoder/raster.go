package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/vector"

	"github.com/goliatone/go-qrform/pkg/style"
)

const (
	defaultModuleSize  = 10
	defaultQuietZone   = 4
	defaultJPEGQuality = 90
	finderSize         = 7
)

// Raster is the default Encoder. The zero value is not usable; call NewRaster.
type Raster struct {
	moduleSize  int
	quietZone   int
	level       qrcode.RecoveryLevel
	jpegQuality int
}

// Option configures a Raster encoder.
type Option func(*Raster)

// WithModuleSize sets the edge length of one module in pixels.
func WithModuleSize(px int) Option {
	return func(r *Raster) {
		if px > 0 {
			r.moduleSize = px
		}
	}
}

// WithQuietZone sets the blank margin around the symbol, in modules.
func WithQuietZone(modules int) Option {
	return func(r *Raster) {
		if modules >= 0 {
			r.quietZone = modules
		}
	}
}

// WithRecoveryLevel sets the error correction level.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(r *Raster) {
		r.level = level
	}
}

// WithJPEGQuality sets the JPEG quality (1-100).
func WithJPEGQuality(quality int) Option {
	return func(r *Raster) {
		if quality >= 1 && quality <= 100 {
			r.jpegQuality = quality
		}
	}
}

// NewRaster returns a Raster encoder with medium error correction, 10px
// modules and a four module quiet zone unless overridden.
func NewRaster(options ...Option) *Raster {
	r := &Raster{
		moduleSize:  defaultModuleSize,
		quietZone:   defaultQuietZone,
		level:       qrcode.Medium,
		jpegQuality: defaultJPEGQuality,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ParseRecoveryLevel maps "low", "medium", "high" and "highest".
func ParseRecoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch name {
	case "low", "L":
		return qrcode.Low, nil
	case "", "medium", "M":
		return qrcode.Medium, nil
	case "high", "Q":
		return qrcode.High, nil
	case "highest", "H":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, fmt.Errorf("encoder: unknown recovery level %q", name)
	}
}

// Encode implements Encoder.
func (r *Raster) Encode(ctx context.Context, payload string, opts style.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := r.Image(payload, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch opts.Format {
	case style.PNG:
		err = png.Encode(&buf, img)
	case style.JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.jpegQuality})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoder: write %s: %w", opts.Format, err)
	}
	return buf.Bytes(), nil
}

// Fingerprint summarises the settings that shape the output, such as
// "m10-q4-r1-j90".
func (r *Raster) Fingerprint() string {
	return fmt.Sprintf("m%d-q%d-r%d-j%d", r.moduleSize, r.quietZone, int(r.level), r.jpegQuality)
}

// Image renders the symbol without encoding it to bytes.
func (r *Raster) Image(payload string, opts style.Options) (image.Image, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if !opts.Module.Valid() {
		return nil, fmt.Errorf("%w: module %q", ErrUnsupportedShape, opts.Module)
	}
	if !opts.Eye.Valid() {
		return nil, fmt.Errorf("%w: eye %q", ErrUnsupportedShape, opts.Eye)
	}

	matrix, err := r.Matrix(payload)
	if err != nil {
		return nil, err
	}

	n := len(matrix)
	ms := r.moduleSize
	side := (n + 2*r.quietZone) * ms
	bounds := image.Rect(0, 0, side, side)

	img := image.NewNRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(opts.Back.Color()), image.Point{}, draw.Src)

	z := vector.NewRasterizer(side, side)
	grid := moduleGrid{bits: matrix}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !matrix[y][x] {
				continue
			}
			shape := opts.Module
			if grid.inFinder(x, y) {
				shape = opts.Eye
			}
			cell := cellRect{
				x: float32((x + r.quietZone) * ms),
				y: float32((y + r.quietZone) * ms),
				s: float32(ms),
			}
			drawModule(z, shape, cell, grid.neighbours(x, y))
		}
	}
	z.Draw(img, bounds, image.NewUniform(opts.Fill.Color()), image.Point{})
	return img, nil
}

// Matrix returns the borderless module matrix for payload, indexed [y][x].
func (r *Raster) Matrix(payload string) ([][]bool, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	code, err := qrcode.New(payload, r.level)
	if err != nil {
		return nil, fmt.Errorf("encoder: build matrix: %w", err)
	}
	code.DisableBorder = true
	return code.Bitmap(), nil
}

// Terminal renders payload with half-block characters for text previews.
func (r *Raster) Terminal(payload string) (string, error) {
	if payload == "" {
		return "", ErrEmptyPayload
	}
	code, err := qrcode.New(payload, r.level)
	if err != nil {
		return "", fmt.Errorf("encoder: build matrix: %w", err)
	}
	return code.ToSmallString(false), nil
}

// moduleGrid answers neighbourhood questions about a module matrix.
type moduleGrid struct {
	bits [][]bool
}

func (g moduleGrid) dark(x, y int) bool {
	if y < 0 || y >= len(g.bits) || x < 0 || x >= len(g.bits[y]) {
		return false
	}
	return g.bits[y][x]
}

// inFinder reports whether (x, y) lies in one of the three 7x7 finder
// patterns at the top-left, top-right and bottom-left corners.
func (g moduleGrid) inFinder(x, y int) bool {
	n := len(g.bits)
	left := x < finderSize
	right := x >= n-finderSize
	top := y < finderSize
	bottom := y >= n-finderSize
	return (top && left) || (top && right) || (bottom && left)
}

// neighbours reports which orthogonal neighbours are dark and belong to the
// same region (finder or data) as (x, y).
func (g moduleGrid) neighbours(x, y int) adjacency {
	region := g.inFinder(x, y)
	same := func(nx, ny int) bool {
		return g.dark(nx, ny) && g.inFinder(nx, ny) == region
	}
	return adjacency{
		up:    same(x, y-1),
		down:  same(x, y+1),
		left:  same(x-1, y),
		right: same(x+1, y),
	}
}
