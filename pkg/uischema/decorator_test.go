package uischema_test

import (
	"testing"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/uischema"
)

func decorated(t *testing.T, id content.TypeID, locale string) model.FormModel {
	t.Helper()

	store, err := uischema.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	form, err := model.NewBuilder().Build(id)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := uischema.NewDecorator(store, locale).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	return form
}

func TestDecorator_German(t *testing.T) {
	form := decorated(t, content.WiFi, "de")

	if form.Summary != "WLAN" || form.UIHints["submitLabel"] != "Erzeugen" || form.UIHints["section.style"] != "Gestaltung" {
		t.Fatalf("form copy not applied: %q %v", form.Summary, form.UIHints)
	}
	if form.UIHints["locale"] != "de" {
		t.Fatalf("locale hint = %q", form.UIHints["locale"])
	}

	ssid, _ := form.Field("ssid")
	if ssid.Label != "Netzwerkname (SSID)" {
		t.Fatalf("ssid label = %q", ssid.Label)
	}

	module, _ := form.Field(model.StyleModule)
	if module.Label != "Modulform" || module.Options[0].Label != "Quadrat" || module.Options[0].Value != "square" {
		t.Fatalf("module field = %+v", module)
	}

	eye, _ := form.Field(model.StyleEye)
	if eye.UIHints["helpHTML"] != "Form der drei <em>Suchmuster</em> in den Ecken." {
		t.Fatalf("help html = %q", eye.UIHints["helpHTML"])
	}
	if eye.UIHints["helpText"] != "Form der drei Suchmuster in den Ecken." {
		t.Fatalf("help text = %q", eye.UIHints["helpText"])
	}
}

func TestDecorator_TypeOverridesShared(t *testing.T) {
	form := decorated(t, content.Geolocation, "en")

	lat, _ := form.Field("latitude")
	if lat.Placeholder != "52.520008" || lat.UIHints["helpText"] != "Decimal degrees between -90 and 90." {
		t.Fatalf("latitude = %+v", lat)
	}
	if lat.Label != "Latitude" {
		t.Fatalf("label without overlay entry should stay, got %q", lat.Label)
	}
}

func TestDecorator_UnknownLocaleIsNoop(t *testing.T) {
	form := decorated(t, content.Text, "fr")
	if form.Summary != "Text" || form.UIHints != nil {
		t.Fatalf("form should be untouched: %+v", form)
	}

	var nilDecorator *uischema.Decorator
	if err := nilDecorator.Decorate(&form); err != nil {
		t.Fatalf("nil decorator: %v", err)
	}
}
