package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/renderers/vanilla"
	"github.com/goliatone/go-qrform/pkg/uischema"
	"github.com/goliatone/go-qrform/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can mutate form models after
// building but before UI schema decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run after the UI schema overlay
// and before widget resolution.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema overlays. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithWidgetRegistry replaces the widget registry used to assign widgets.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// Orchestrator coordinates the pipeline from content type to rendered output.
// It applies defaults (vanilla renderer, embedded overlays, built-in widgets)
// while remaining open to dependency injection.
type Orchestrator struct {
	builder           model.Builder
	registry          *render.Registry
	defaultRenderer   string
	transformer       Transformer
	decorators        []model.Decorator
	widgets           *widgets.Registry
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	store             *uischema.Store
	initialiseErr     error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form rendering.
type Request struct {
	// Type selects the content type.
	Type content.TypeID

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Locale selects the UI schema overlay. Empty means the default locale.
	Locale string

	// RenderOptions carries prefilled values, errors and a generated preview.
	RenderOptions render.RenderOptions
}

// Generate builds and decorates the form for req.Type and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req.Type, req.Locale)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Locale == "" {
		opts.Locale = form.UIHints["locale"]
	}
	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form returns the fully decorated form model for id in locale.
func (o *Orchestrator) Form(ctx context.Context, id content.TypeID, locale string) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	form, err := o.builder.Build(id)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	decorators := make([]model.Decorator, 0, len(o.decorators)+2)
	if !o.store.Empty() {
		decorators = append(decorators, uischema.NewDecorator(o.store, o.MatchLocale(locale)))
	}
	decorators = append(decorators, o.decorators...)
	decorators = append(decorators, o.widgets)

	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return form, nil
}

// Locales lists the locales with a UI schema overlay.
func (o *Orchestrator) Locales() []string {
	return o.store.Locales()
}

// MatchLocale negotiates the overlay locale for Accept-Language style
// preferences.
func (o *Orchestrator) MatchLocale(preferences ...string) string {
	return o.store.Match(preferences...)
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Default()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		renderer, err := vanilla.New(vanilla.WithWidgetRegistry(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, _ = render.NewRegistry(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if !o.uiSchemaSpecified {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	o.store = store
}
