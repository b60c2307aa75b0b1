package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qrform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestPrecedence(t *testing.T) {
	cfg := Default()
	path := writeFile(t, "addr: \":9000\"\nlocale: de\nencoder:\n  moduleSize: 6\n  quietZone: 2\nredis:\n  ttl: 1h\n")
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}

	t.Setenv("QRFORM_MODULE_SIZE", "8")
	t.Setenv("QRFORM_CACHE_TTL", "90")
	cfg.ApplyEnv()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindServerFlags(fs)
	if err := fs.Parse([]string{"-quiet-zone", "1"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	want := Default()
	want.Addr = ":9000"
	want.Locale = "de"
	want.Encoder.ModuleSize = 8
	want.Encoder.QuietZone = 1
	want.Redis.TTL = 90 * time.Second

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestPortFallback(t *testing.T) {
	t.Setenv("PORT", "3318")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Addr != ":3318" {
		t.Fatalf("addr = %q, want :3318", cfg.Addr)
	}

	t.Setenv("QRFORM_ADDR", "127.0.0.1:7000")
	cfg = Default()
	cfg.ApplyEnv()
	if cfg.Addr != "127.0.0.1:7000" {
		t.Fatalf("explicit addr should win, got %q", cfg.Addr)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadFile(writeFile(t, "listen: \":1\"\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := cfg.LoadFile(writeFile(t, "")); err != nil {
		t.Fatalf("empty file should be accepted: %v", err)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigFile, writeFile(t, "appEnv: development\n"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Development() {
		t.Fatalf("expected development env, got %q", cfg.AppEnv)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Encoder.ModuleSize = 0
	cfg.Encoder.JPEGQuality = 101
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"module size", "jpeg quality"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestEncoderRaster(t *testing.T) {
	cfg := Default().Encoder
	if _, err := cfg.Raster(); err != nil {
		t.Fatalf("default encoder: %v", err)
	}
	cfg.Recovery = "extreme"
	if _, err := cfg.Raster(); err == nil {
		t.Fatalf("expected unknown recovery level error")
	}
}
