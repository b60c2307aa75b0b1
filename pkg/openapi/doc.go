// Package openapi describes the JSON API as an OpenAPI 3 document generated
// from the content type registry. Request schemas are derived from the same
// field specs the forms use, so the published contract cannot drift from the
// validation rules.
package openapi
