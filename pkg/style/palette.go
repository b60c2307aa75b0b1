package style

import (
	"fmt"
	"sort"

	theme "github.com/goliatone/go-theme"
)

// Palette tokens read from a theme manifest.
const (
	TokenFill = "qr.fill"
	TokenBack = "qr.back"
)

// Palettes resolves named colour presets stored as go-theme manifests. Each
// manifest carries TokenFill and TokenBack; variants override either token.
type Palettes struct {
	manifests map[string]*theme.Manifest
	provider  registrar
}

type registrar interface {
	Register(*theme.Manifest) error
}

// NewPalettes registers the given manifests. Registration fails on invalid
// manifests or missing colour tokens.
func NewPalettes(manifests ...*theme.Manifest) (*Palettes, error) {
	p := &Palettes{
		manifests: make(map[string]*theme.Manifest, len(manifests)),
		provider:  theme.NewRegistry(),
	}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := p.provider.Register(m); err != nil {
			return nil, fmt.Errorf("style: register palette %q: %w", m.Name, err)
		}
		for _, token := range []string{TokenFill, TokenBack} {
			if _, err := ParseHex(m.Tokens[token]); err != nil {
				return nil, fmt.Errorf("style: palette %q token %s: %w", m.Name, token, err)
			}
		}
		p.manifests[m.Name] = m
	}
	return p, nil
}

// DefaultPalettes returns the built-in presets.
func DefaultPalettes() *Palettes {
	p, err := NewPalettes(builtinPalettes()...)
	if err != nil {
		panic(err)
	}
	return p
}

// Names lists registered palette names in lexical order.
func (p *Palettes) Names() []string {
	names := make([]string, 0, len(p.manifests))
	for name := range p.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the variant names of palette in lexical order.
func (p *Palettes) Variants(name string) []string {
	m, ok := p.manifests[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m.Variants))
	for v := range m.Variants {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Select implements theme.ThemeSelector so palettes can be handed to code
// that already speaks go-theme.
func (p *Palettes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	m, ok := p.manifests[name]
	if !ok {
		return nil, fmt.Errorf("style: unknown palette %q", name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("style: palette %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// Resolve returns the fill and background colours of a palette variant. An
// empty variant selects the base tokens.
func (p *Palettes) Resolve(name, variant string) (fill, back RGB, err error) {
	sel, err := p.Select(name, variant)
	if err != nil {
		return RGB{}, RGB{}, err
	}
	tokens := make(map[string]string, len(sel.Manifest.Tokens))
	for k, v := range sel.Manifest.Tokens {
		tokens[k] = v
	}
	if variant != "" {
		for k, v := range sel.Manifest.Variants[variant].Tokens {
			tokens[k] = v
		}
	}

	if fill, err = ParseHex(tokens[TokenFill]); err != nil {
		return RGB{}, RGB{}, err
	}
	if back, err = ParseHex(tokens[TokenBack]); err != nil {
		return RGB{}, RGB{}, err
	}
	return fill, back, nil
}

// Apply overrides the colours of opts with the palette.
func (p *Palettes) Apply(opts Options, name, variant string) (Options, error) {
	fill, back, err := p.Resolve(name, variant)
	if err != nil {
		return opts, err
	}
	opts.Fill, opts.Back = fill, back
	return opts, nil
}

func builtinPalettes() []*theme.Manifest {
	palette := func(name, fill, back string) *theme.Manifest {
		return &theme.Manifest{
			Name:    name,
			Version: "1.0.0",
			Tokens: map[string]string{
				TokenFill: fill,
				TokenBack: back,
			},
			Variants: map[string]theme.Variant{
				"inverted": {
					Tokens: map[string]string{
						TokenFill: back,
						TokenBack: fill,
					},
				},
			},
		}
	}
	return []*theme.Manifest{
		palette("classic", "#000000", "#ffffff"),
		palette("ocean", "#0b3d91", "#e8f1ff"),
		palette("forest", "#1b4332", "#f1faee"),
		palette("sunset", "#7f1d1d", "#fff7ed"),
	}
}
