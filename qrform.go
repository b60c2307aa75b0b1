// Package qrform is the top-level entry point for generating QR codes from
// typed content and rendering the forms that collect it.
package qrform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/encoder"
	"github.com/goliatone/go-qrform/pkg/orchestrator"
	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/renderers/vanilla"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases dispatcher.Request so callers can build without importing
// the dispatcher package.
type Request = dispatcher.Request

// Result aliases dispatcher.Result.
type Result = dispatcher.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewDispatcher returns a dispatcher backed by the raster encoder.
func NewDispatcher(options ...dispatcher.Option) *dispatcher.Dispatcher {
	return dispatcher.New(encoder.NewRaster(), options...)
}

// Build encodes req with the default raster encoder.
func Build(ctx context.Context, req Request) (Result, error) {
	return NewDispatcher().Build(ctx, req)
}

// GenerateHTML builds the form for id, localises it and renders it with the
// vanilla renderer. It is the simplest entry point for callers that just want
// HTML output.
func GenerateHTML(ctx context.Context, id content.TypeID, locale string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Type:   id,
		Locale: locale,
	})
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the stylesheet bundled with the vanilla renderer.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(qrform.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
