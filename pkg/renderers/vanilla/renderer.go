package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/render"
	rendertemplate "github.com/goliatone/go-qrform/pkg/render/template"
	"github.com/goliatone/go-qrform/pkg/render/template/pongo"
	"github.com/goliatone/go-qrform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-qrform/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
	inlineStyles     bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the built-in control components.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgetRegistry sets the registry used for fields without a widget hint.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithInlineStyles toggles inlining the embedded stylesheet. Enabled by default.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithStylesheets links additional stylesheets from the page head.
func WithStylesheets(hrefs ...string) Option {
	return func(cfg *config) {
		cfg.stylesheets = append(cfg.stylesheets, hrefs...)
	}
}

// Renderer produces a standalone HTML page for one content type form,
// including the type navigation and the preview of a generated code.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	components   *components.Registry
	widgets      *widgets.Registry
	inlineStyles bool
	stylesheets  []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	return &Renderer{
		templates:    renderer,
		components:   cfg.components,
		widgets:      cfg.widgets,
		inlineStyles: cfg.inlineStyles,
		stylesheets:  cfg.stylesheets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type section struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := newComponentRenderer(r.templates, r.components, r.widgets, options)

	var sections []section
	for _, name := range []string{model.SectionContent, model.SectionStyle} {
		members := form.Section(name)
		if len(members) == 0 {
			continue
		}
		var markup strings.Builder
		for _, field := range members {
			rendered, err := fields.render(field)
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: %w", err)
			}
			markup.WriteString(rendered)
		}
		sections = append(sections, section{
			Name:  name,
			Title: hintOr(form.UIHints, "section."+name, sectionTitle(name)),
			HTML:  markup.String(),
		})
	}

	// Errors keyed by names the form does not render are shown at the top.
	formErrors := options.FormErrors
	names := make([]string, 0, len(options.Errors))
	for name := range options.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := form.Field(name); !ok {
			formErrors = render.MergeFormErrors(formErrors, options.Errors[name]...)
		}
	}

	stylesheet := ""
	if r.inlineStyles {
		stylesheet = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"form":           form,
		"locale":         options.Locale,
		"types":          options.Types,
		"sections":       sections,
		"form_errors":    render.MergeFormErrors(formErrors),
		"hidden_fields":  render.SortedHiddenFields(options.Hidden),
		"result":         options.Result,
		"classes":        chromeClasses(),
		"stylesheet":     stylesheet,
		"stylesheets":    append(append([]string(nil), r.stylesheets...), fields.stylesheets()...),
		"submit_label":   hintOr(form.UIHints, "submitLabel", "Generate"),
		"download_label": hintOr(form.UIHints, "downloadLabel", "Download"),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func sectionTitle(name string) string {
	switch name {
	case model.SectionContent:
		return "Content"
	case model.SectionStyle:
		return "Style"
	default:
		return name
	}
}
