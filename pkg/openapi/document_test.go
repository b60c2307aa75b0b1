package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrform/pkg/content"
)

func TestDocumentListsEveryType(t *testing.T) {
	doc, err := Document()
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	for _, id := range content.Types() {
		ref, ok := doc.Components.Schemas[schemaName(id)]
		if !ok || ref.Value == nil {
			t.Fatalf("missing schema for %s", id)
		}
		specs, _ := content.Fields(id)
		for _, spec := range specs {
			if _, ok := ref.Value.Properties[spec.Name]; !ok {
				t.Fatalf("%s schema missing property %q", id, spec.Name)
			}
		}
	}
}

func TestWiFiFieldsSchema(t *testing.T) {
	doc, err := Document()
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	schema := doc.Components.Schemas["WiFiFields"].Value

	if diff := cmp.Diff([]string{"ssid"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	wantOrder := []any{"ssid", "encryption", "password", "hidden"}
	if diff := cmp.Diff(wantOrder, schema.Extensions[ExtensionFieldOrder]); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"WPA", "WEP"}, schema.Properties["encryption"].Value.Enum); diff != "" {
		t.Fatalf("encryption enum mismatch (-want +got):\n%s", diff)
	}
	if got := schema.Properties["password"].Value.Format; got != "password" {
		t.Fatalf("password format = %q", got)
	}
}

func TestJSONRoundTripsThroughParser(t *testing.T) {
	raw, err := JSON(WithTitle("qr api"), WithServers("http://localhost:8080"))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	doc, err := Parse(context.Background(), raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Info.Title != "qr api" {
		t.Fatalf("title = %q", doc.Info.Title)
	}

	want := map[string]string{
		"health":    "GET " + PathHealth,
		"listTypes": "GET " + PathTypes,
		"getType":   "GET " + PathType,
		"build":     "POST " + PathBuild,
		"payload":   "POST " + PathPayload,
	}
	if diff := cmp.Diff(want, OperationIDs(doc)); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	build := doc.Paths.Value(PathBuild).Post
	for _, status := range []int{200, 400, 404, 422, 500} {
		if build.Responses.Status(status) == nil {
			t.Fatalf("build missing %d response", status)
		}
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := Parse(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
