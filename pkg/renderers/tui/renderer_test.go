package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
	selectCfgs   []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func wifiForm(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.NewBuilder(model.WithStyleSection(false)).Build(content.WiFi)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func TestCollect_WiFiPromptsByWidget(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Home"},
		selectIdx: []int{1},
		passwords: []string{"secret"},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	values, err := r.Collect(context.Background(), wifiForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]any{"ssid": "Home", "encryption": "WEP", "password": "secret", "hidden": true}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selectCfgs[0].DefaultIndex; got != 0 {
		t.Fatalf("encryption default index = %d, want 0 (WPA)", got)
	}
}

func TestCollect_RepromptsRequiredField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  ", "Home"},
		selectIdx: []int{0},
		passwords: []string{""},
		confirm:   []bool{false},
	}
	r, _ := New(WithPromptDriver(driver))

	values, err := r.Collect(context.Background(), wifiForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["ssid"] != "Home" {
		t.Fatalf("ssid = %v", values["ssid"])
	}
	if len(driver.infoMessages) == 0 || !strings.Contains(driver.infoMessages[len(driver.infoMessages)-1], "SSID is required") {
		t.Fatalf("expected required message, got %v", driver.infoMessages)
	}
}

func TestCollect_ValidatorSendsFieldsBack(t *testing.T) {
	form, err := model.NewBuilder(model.WithStyleSection(false)).Build(content.Geolocation)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	driver := &stubDriver{inputs: []string{"91", "10", "45"}}

	validator := func(values map[string]any) map[string][]string {
		problems, _ := content.ValidateAll(content.Geolocation, content.Values(values))
		out := map[string][]string{}
		for _, p := range problems {
			out[p.Field] = append(out[p.Field], p.Error())
		}
		return out
	}
	r, _ := New(WithPromptDriver(driver), WithValidator(validator))

	values, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]any{"latitude": "45", "longitude": "10"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if driver.inputPos != 3 {
		t.Fatalf("expected only latitude to be asked again, inputs used = %d", driver.inputPos)
	}
}

func TestCollect_TooManyRounds(t *testing.T) {
	form, _ := model.NewBuilder(model.WithStyleSection(false)).Build(content.Phone)
	driver := &stubDriver{inputs: []string{"1", "2"}}
	always := func(map[string]any) map[string][]string {
		return map[string][]string{"phone": {"nope"}}
	}
	r, _ := New(WithPromptDriver(driver), WithValidator(always), WithMaxRounds(2))

	if _, err := r.Collect(context.Background(), form, render.RenderOptions{}); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRender_SerializesPrettyText(t *testing.T) {
	form, _ := model.NewBuilder(model.WithStyleSection(false)).Build(content.SMS)
	driver := &stubDriver{inputs: []string{"+100"}, textAreas: []string{"hi there"}}
	r, _ := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "message=hi there\nphone=+100\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("content type = %s", r.ContentType())
	}
}

func TestCollect_PrefillAndCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ := New(WithPromptDriver(&stubDriver{}))
	if _, err := r.Collect(ctx, wifiForm(t), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	state := NewState(map[string]any{"hidden": "true"}, map[string][]string{"ssid": {"taken"}})
	field, _ := wifiForm(t).Field("hidden")
	if !defaultBoolValue(state, field) {
		t.Fatalf("prefilled string bool should be honoured")
	}
	state.SetValue("ssid", "x")
	if len(state.ErrorsFor("ssid")) != 0 {
		t.Fatalf("setting a value should clear its errors")
	}
}
