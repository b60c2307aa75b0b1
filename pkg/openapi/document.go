package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-qrform/pkg/content"
)

// API paths described by the document.
const (
	PathHealth   = "/healthz"
	PathTypes    = "/api/v1/types"
	PathType     = "/api/v1/types/{type}"
	PathBuild    = "/api/v1/build"
	PathPayload  = "/api/v1/payload"
	OpenAPIVer   = "3.0.3"
	DefaultTitle = "qrform"
)

// Option customises the generated document.
type Option func(*config)

type config struct {
	title   string
	version string
	servers []string
}

// WithTitle overrides info.title.
func WithTitle(title string) Option {
	return func(c *config) {
		if title != "" {
			c.title = title
		}
	}
}

// WithVersion overrides info.version.
func WithVersion(version string) Option {
	return func(c *config) {
		if version != "" {
			c.version = version
		}
	}
}

// WithServers lists server base URLs.
func WithServers(urls ...string) Option {
	return func(c *config) {
		c.servers = append(c.servers, urls...)
	}
}

// Document builds and validates the API description.
func Document(options ...Option) (*openapi3.T, error) {
	cfg := config{title: DefaultTitle, version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVer,
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: "Generate QR code images from typed content.",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}
	for _, url := range cfg.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	for _, id := range content.Types() {
		schema, err := fieldsSchema(id)
		if err != nil {
			return nil, err
		}
		doc.Components.Schemas[schemaName(id)] = openapi3.NewSchemaRef("", schema)
	}
	doc.Components.Schemas[styleSchemaName] = openapi3.NewSchemaRef("", styleSchema())
	doc.Components.Schemas[requestSchemaName] = openapi3.NewSchemaRef("", requestSchema(doc.Components.Schemas))
	doc.Components.Schemas[descriptorSchemaName] = openapi3.NewSchemaRef("", descriptorSchema())
	doc.Components.Schemas[errorSchemaName] = openapi3.NewSchemaRef("", errorSchema())
	doc.Components.Schemas[payloadSchemaName] = openapi3.NewSchemaRef("", payloadSchema())

	addPaths(doc)

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// JSON renders the document as indented JSON.
func JSON(options ...Option) ([]byte, error) {
	doc, err := Document(options...)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal document: %w", err)
	}
	return data, nil
}

func addPaths(doc *openapi3.T) {
	ref := func(name string) *openapi3.SchemaRef {
		return &openapi3.SchemaRef{
			Ref:   "#/components/schemas/" + name,
			Value: doc.Components.Schemas[name].Value,
		}
	}
	errorResponse := func(description string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(ref(errorSchemaName))}
	}

	health := openapi3.NewOperation()
	health.OperationID = "health"
	health.Summary = "Liveness probe"
	health.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Service is up")}),
	)
	doc.Paths.Set(PathHealth, &openapi3.PathItem{Get: health})

	list := openapi3.NewOperation()
	list.OperationID = "listTypes"
	list.Summary = "List content types with their fields"
	list.Tags = []string{"types"}
	list.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Content types in display order").
			WithJSONSchema(openapi3.NewArraySchema().WithItems(ref(descriptorSchemaName).Value))}),
	)
	doc.Paths.Set(PathTypes, &openapi3.PathItem{Get: list})

	ids := make([]any, 0, len(content.Types()))
	for _, id := range content.Types() {
		ids = append(ids, id.String())
	}
	get := openapi3.NewOperation()
	get.OperationID = "getType"
	get.Summary = "Describe one content type"
	get.Tags = []string{"types"}
	get.Parameters = openapi3.Parameters{
		{Value: openapi3.NewPathParameter("type").WithSchema(openapi3.NewStringSchema().WithEnum(ids...))},
	}
	get.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Content type descriptor").
			WithJSONSchemaRef(ref(descriptorSchemaName))}),
		openapi3.WithStatus(404, errorResponse("Unknown content type")),
	)
	doc.Paths.Set(PathType, &openapi3.PathItem{Get: get})

	binary := openapi3.NewStringSchema().WithFormat("binary")
	build := openapi3.NewOperation()
	build.OperationID = "build"
	build.Summary = "Generate a QR code image"
	build.Tags = []string{"build"}
	build.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(ref(requestSchemaName))}
	build.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Encoded image, sent as an attachment").
			WithContent(openapi3.Content{
				"image/png":  openapi3.NewMediaType().WithSchema(binary),
				"image/jpeg": openapi3.NewMediaType().WithSchema(binary),
			})}),
		openapi3.WithStatus(400, errorResponse("Malformed request body")),
		openapi3.WithStatus(404, errorResponse("Unknown content type")),
		openapi3.WithStatus(422, errorResponse("Field or style validation failed")),
		openapi3.WithStatus(500, errorResponse("Encoding failed")),
	)
	doc.Paths.Set(PathBuild, &openapi3.PathItem{Post: build})

	payload := openapi3.NewOperation()
	payload.OperationID = "payload"
	payload.Summary = "Format the payload without encoding an image"
	payload.Tags = []string{"build"}
	payload.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(ref(requestSchemaName))}
	payload.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Formatted payload").
			WithJSONSchemaRef(ref(payloadSchemaName))}),
		openapi3.WithStatus(400, errorResponse("Malformed request body")),
		openapi3.WithStatus(404, errorResponse("Unknown content type")),
		openapi3.WithStatus(422, errorResponse("Field or style validation failed")),
	)
	doc.Paths.Set(PathPayload, &openapi3.PathItem{Post: payload})
}
