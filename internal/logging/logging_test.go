package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("production", &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("type", "wifi").Msg("built")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["type"] != "wifi" || entry["message"] != "built" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New("development", &buf)
	logger.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	handler := Middleware(New("production", &buf), func(*http.Request) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}),
	)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-1" || entry["path"] != "/healthz" || entry["status"] != float64(http.StatusTeapot) {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["bytes"] != float64(len("short and stout")) {
		t.Fatalf("bytes = %v", entry["bytes"])
	}
}
