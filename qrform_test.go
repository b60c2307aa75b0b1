package qrform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/renderers/vanilla"
	"github.com/goliatone/go-qrform/pkg/testsupport"
)

func TestEmbeddedAssetsContainStylesheet(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedAssets(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".qrform-form") {
		t.Fatalf("expected stylesheet to style the form chrome")
	}
}

func TestEmbeddedTemplatesContainPage(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(context.Background(), content.WiFi, "de")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	for _, want := range []string{`name="ssid"`, `name="style.fill"`, `lang="de"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestBuild(t *testing.T) {
	res, err := Build(context.Background(), Request{
		Type:   content.Text,
		Values: content.Values{"text": "hello"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.Payload != "hello" || res.ContentType != "image/png" {
		t.Fatalf("unexpected result %q %q", res.Payload, res.ContentType)
	}
	if img := testsupport.MustDecodePNG(t, res.Data); img.Bounds().Dx() == 0 {
		t.Fatalf("empty image")
	}
}
