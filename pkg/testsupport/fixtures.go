// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/model"
)

// MustBuildForm builds the form model for id with the default builder.
func MustBuildForm(t *testing.T, id content.TypeID, options ...model.BuilderOption) model.FormModel {
	t.Helper()

	form, err := model.NewBuilder(options...).Build(id)
	if err != nil {
		t.Fatalf("build form %s: %v", id, err)
	}
	return form
}

// MustDecodePNG decodes data as a PNG image.
func MustDecodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

// MustReadGoldenString reads a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// AssertGolden compares got with the golden file at path. With UPDATE_GOLDENS
// set the file is rewritten instead.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}
	if diff := cmp.Diff(MustReadGoldenString(t, path), got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
