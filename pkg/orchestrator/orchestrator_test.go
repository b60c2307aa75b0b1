package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/orchestrator"
	"github.com/goliatone/go-qrform/pkg/render"
)

type stubRenderer struct {
	name string
	form model.FormModel
	opts render.RenderOptions
}

func (s *stubRenderer) Name() string        { return s.name }
func (s *stubRenderer) ContentType() string { return "text/plain" }
func (s *stubRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	s.form = form
	s.opts = opts
	return []byte("rendered " + form.OperationID), nil
}

func TestGenerate_DefaultPipeline(t *testing.T) {
	o := orchestrator.New()

	out, err := o.Generate(context.Background(), orchestrator.Request{Type: content.WiFi, Locale: "de-DE"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`<html lang="de">`, "WLAN", `data-component="toggle"`, "Erzeugen"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("output missing %q", fragment)
		}
	}
}

func TestForm_DecoratorOrder(t *testing.T) {
	var order []string
	o := orchestrator.New(
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, form *model.FormModel) error {
			order = append(order, "transform:"+form.Summary)
			return nil
		})),
		orchestrator.WithUIDecorators(model.DecoratorFunc(func(form *model.FormModel) error {
			ssid, _ := form.Field("ssid")
			order = append(order, "decorate:"+form.Summary+":"+ssid.UIHints["widget"])
			return nil
		})),
	)

	form, err := o.Form(context.Background(), content.WiFi, "en")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	want := []string{"transform:WiFi", "decorate:WiFi:"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v, want %v", order, want)
	}
	ssid, _ := form.Field("ssid")
	if ssid.UIHints["widget"] != "input" || ssid.Label != "Network name (SSID)" {
		t.Fatalf("ssid = %+v", ssid)
	}
}

func TestGenerate_CustomRendererAndErrors(t *testing.T) {
	stub := &stubRenderer{name: "stub"}
	registry, err := render.NewRegistry(stub)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	o := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("missing"),
		orchestrator.WithUISchemaFS(nil),
	)

	out, err := o.Generate(context.Background(), orchestrator.Request{Type: content.SMS})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "rendered sms" || stub.form.Summary != "SMS" {
		t.Fatalf("unexpected output %q / %q", out, stub.form.Summary)
	}
	if stub.opts.Locale != "" {
		t.Fatalf("no overlay means no locale, got %q", stub.opts.Locale)
	}
	if len(o.Locales()) != 0 || o.MatchLocale("de") != "en" {
		t.Fatalf("disabled overlays should report no locales")
	}

	if _, err := o.Generate(context.Background(), orchestrator.Request{Type: content.SMS, Renderer: "nope"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if _, err := o.Generate(context.Background(), orchestrator.Request{Type: content.TypeID(99)}); !content.IsUnknownType(err) {
		t.Fatalf("expected unknown type error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Form(ctx, content.Text, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
