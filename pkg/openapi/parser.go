package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Parse loads and validates a serialised document, resolving internal
// references. External references are refused.
func Parse(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// OperationIDs lists "METHOD path" keyed by operationId.
func OperationIDs(doc *openapi3.T) map[string]string {
	out := make(map[string]string)
	if doc == nil || doc.Paths == nil {
		return out
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil && op.OperationID != "" {
				out[op.OperationID] = method + " " + path
			}
		}
	}
	return out
}
