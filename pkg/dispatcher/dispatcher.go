// Package dispatcher builds QR images from typed requests. A build resolves
// the content type, validates field values and style options, formats the
// payload and hands it to an encoder. The encoder is never called for an
// invalid request.
package dispatcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/encoder"
	"github.com/goliatone/go-qrform/pkg/style"
)

// Request describes one build.
type Request struct {
	Type     content.TypeID
	Values   content.Values
	Style    style.Options
	Filename string
}

// Result holds a successful build.
type Result struct {
	Type        content.TypeID
	Payload     string
	Data        []byte
	Format      style.Format
	ContentType string
	Filename    string
}

// Observer receives the outcome of every build.
type Observer interface {
	ObserveBuild(id content.TypeID, kind Kind, elapsed time.Duration)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(id content.TypeID, kind Kind, elapsed time.Duration)

// ObserveBuild calls the underlying function.
func (fn ObserverFunc) ObserveBuild(id content.TypeID, kind Kind, elapsed time.Duration) {
	fn(id, kind, elapsed)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithObserver registers an observer for build outcomes.
func WithObserver(observer Observer) Option {
	return func(d *Dispatcher) {
		if observer != nil {
			d.observer = observer
		}
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// Dispatcher is safe for concurrent use once constructed.
type Dispatcher struct {
	encoder  encoder.Encoder
	observer Observer
	logger   zerolog.Logger
	now      func() time.Time
}

// New returns a dispatcher delegating rendering to enc.
func New(enc encoder.Encoder, options ...Option) *Dispatcher {
	d := &Dispatcher{
		encoder:  enc,
		observer: ObserverFunc(func(content.TypeID, Kind, time.Duration) {}),
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Build validates, formats and encodes req.
func (d *Dispatcher) Build(ctx context.Context, req Request) (res Result, err error) {
	start := d.now()
	defer func() {
		kind := ErrorKind(err)
		d.observer.ObserveBuild(req.Type, kind, d.now().Sub(start))
		if err != nil {
			d.logger.Debug().Err(err).Str("type", req.Type.String()).Str("kind", kind.String()).Msg("qr build rejected")
		}
	}()

	payload, opts, err := d.prepare(req)
	if err != nil {
		return Result{}, err
	}

	data, err := d.encoder.Encode(ctx, payload, opts)
	if err != nil {
		return Result{}, &EncodingError{Type: req.Type, Cause: err}
	}

	d.logger.Debug().
		Str("type", req.Type.String()).
		Str("format", string(opts.Format)).
		Int("bytes", len(data)).
		Msg("qr built")

	return Result{
		Type:        req.Type,
		Payload:     payload,
		Data:        data,
		Format:      opts.Format,
		ContentType: opts.Format.ContentType(),
		Filename:    Filename(req.Filename, opts.Format),
	}, nil
}

// Payload validates req and returns the formatted payload without encoding.
func (d *Dispatcher) Payload(req Request) (string, error) {
	payload, _, err := d.prepare(req)
	return payload, err
}

func (d *Dispatcher) prepare(req Request) (string, style.Options, error) {
	formatter, err := content.FormatterFor(req.Type)
	if err != nil {
		return "", style.Options{}, err
	}
	if err := formatter.Validate(req.Values); err != nil {
		return "", style.Options{}, err
	}

	opts := req.Style
	if opts == (style.Options{}) {
		opts = style.Default()
	}
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return "", style.Options{}, err
	}
	return formatter.Format(req.Values), opts, nil
}
