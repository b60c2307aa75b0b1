// Package pongo implements template.TemplateRenderer on top of pongo2.
package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-qrform/pkg/render/template"
	"github.com/goliatone/go-qrform/pkg/style"
)

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(data map[string]any) Option {
	return func(e *Engine) {
		e.globals = data
	}
}

// Engine renders templates from a pongo2 set. Parsed templates are cached by
// path.
type Engine struct {
	files   fs.FS
	ext     string
	globals map[string]any

	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New returns an engine reading from the configured fs.FS.
func New(options ...Option) (*Engine, error) {
	e := &Engine{ext: ".tmpl", cache: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, errors.New("pongo: template fs is required")
	}
	e.set = pongo2.NewSet("qrform", pongo2.NewFSLoader(e.files))
	registerFilters()

	if err := e.GlobalContext(e.globals); err != nil {
		return nil, fmt.Errorf("pongo: globals: %w", err)
	}
	return e, nil
}

// Render treats name as inline template content when it contains template
// tags, otherwise as a template path.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

// RenderString parses and executes content without caching it.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter adds a filter. pongo2 filters are process-wide, so a name
// can be taken once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the globals visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(globals)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data for %q: %w", name, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %q: %w", name, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// toContext flattens data into plain maps and slices so templates address
// struct values by their JSON names.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	plain, err := plainValue(data)
	if err != nil {
		return nil, err
	}
	m, ok := plain.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template data must be an object, got %T", data)
	}
	ctx := make(pongo2.Context, len(m))
	for key, value := range m {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = value
		}
	}
	return ctx, nil
}

func plainValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case pongo2.Context:
		return plainValue(map[string]any(v))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return plainValue(decoded)
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim":     filterTrim,
			"domid":    filterDOMID,
			"bytesize": filterByteSize,
			"hexcolor": filterHexColor,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterTrim(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterDOMID turns dotted field names such as "style.fill" into element ids.
func filterDOMID(in, prefix *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	id := strings.NewReplacer(".", "-", " ", "-", "[", "-", "]", "").Replace(strings.TrimSpace(in.String()))
	if prefix != nil && !prefix.IsNil() && prefix.String() != "" {
		id = prefix.String() + "-" + id
	}
	return pongo2.AsValue(id), nil
}

func filterByteSize(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	n := in.Integer()
	switch {
	case n >= 1<<20:
		return pongo2.AsValue(fmt.Sprintf("%.1f MB", float64(n)/(1<<20))), nil
	case n >= 1<<10:
		return pongo2.AsValue(fmt.Sprintf("%.1f KB", float64(n)/(1<<10))), nil
	default:
		return pongo2.AsValue(fmt.Sprintf("%d B", n)), nil
	}
}

// filterHexColor expands colour values to the #rrggbb form colour inputs
// require, falling back to the parameter when the value does not parse.
func filterHexColor(in, fallback *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if c, err := style.ParseHex(in.String()); err == nil {
		return pongo2.AsValue(c.Hex()), nil
	}
	if fallback != nil && !fallback.IsNil() {
		return fallback, nil
	}
	return pongo2.AsValue(""), nil
}
