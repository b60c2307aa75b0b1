package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned for names nobody registered.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry holds renderers by name in registration order. The first
// registered renderer is the default.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

// NewRegistry returns a registry holding renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{byName: make(map[string]Renderer)}
	var errs []error
	for _, renderer := range renderers {
		errs = append(errs, r.Register(renderer))
	}
	return r, errors.Join(errs...)
}

// Register adds renderer under its Name. Names are case-insensitive and
// may only be taken once.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byName == nil {
		r.byName = make(map[string]Renderer)
	}
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// Get looks up a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[normalizeName(name)]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
}

// Default returns the first registered renderer.
func (r *Registry) Default() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil, fmt.Errorf("%w: registry is empty", ErrRendererNotFound)
	}
	return r.byName[r.order[0]], nil
}

// Names lists renderer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
