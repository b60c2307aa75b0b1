package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/internal/metrics"
	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/encoder"
	"github.com/goliatone/go-qrform/pkg/openapi"
	"github.com/goliatone/go-qrform/pkg/style"
)

type stubEncoder struct {
	calls atomic.Int32
	err   error
}

func (s *stubEncoder) Encode(_ context.Context, payload string, _ style.Options) ([]byte, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []byte("img:" + payload), nil
}

func newTestServer(t *testing.T, enc encoder.Encoder, options ...Option) *Server {
	t.Helper()
	srv, err := New(config.Default(), dispatcher.New(enc), options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, body io.Reader) errorDetail {
	t.Helper()
	var out errorBody
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})
	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}

	srv = newTestServer(t, &stubEncoder{}, WithHealthCheck("redis", func(context.Context) error {
		return errors.New("down")
	}))
	rec = do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), `"redis":"down"`) {
		t.Fatalf("unexpected degraded response %d %s", rec.Code, rec.Body.String())
	}
}

func TestListTypes(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})
	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/types", nil))

	var got []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ids := make([]string, 0, len(got))
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	want := []string{"text", "link", "email", "phone", "sms", "geolocation", "wifi", "vcard"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestGetType(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/types/WiFi", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"ssid"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/types/fax", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec.Body); got.Kind != "unknown_type" {
		t.Fatalf("kind = %q", got.Kind)
	}
}

func TestBuild(t *testing.T) {
	enc := &stubEncoder{}
	srv := newTestServer(t, enc)
	body := `{"type":"geolocation","fields":{"latitude":"48.8566","longitude":"2.3522"},"filename":"paris"}`

	rec := do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/build", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename=paris.png` {
		t.Fatalf("disposition = %q", got)
	}
	if got := rec.Body.String(); got != "img:geo:48.8566,2.3522" {
		t.Fatalf("body = %q", got)
	}
}

func TestBuildStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		encErr error
		status int
		kind   string
		field  string
		calls  int32
	}{
		{name: "malformed", body: `{"type":`, status: http.StatusBadRequest, kind: "malformed"},
		{name: "unknown key", body: `{"type":"text","fields":{},"extra":1}`, status: http.StatusBadRequest, kind: "malformed"},
		{name: "unknown type", body: `{"type":"fax","fields":{}}`, status: http.StatusNotFound, kind: "unknown_type"},
		{name: "validation", body: `{"type":"text","fields":{"text":"  "}}`, status: http.StatusUnprocessableEntity, kind: "validation", field: "text"},
		{name: "style", body: `{"type":"text","fields":{"text":"a"},"style":{"module":"hexagon"}}`, status: http.StatusUnprocessableEntity, kind: "validation", field: "style.module"},
		{name: "encoding", body: `{"type":"text","fields":{"text":"a"}}`, encErr: errors.New("too long"), status: http.StatusInternalServerError, kind: "encoding", calls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := &stubEncoder{err: tc.encErr}
			srv := newTestServer(t, enc)
			rec := do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/build", strings.NewReader(tc.body)))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			got := decodeError(t, rec.Body)
			if got.Kind != tc.kind || got.Field != tc.field {
				t.Fatalf("error = %+v, want kind %q field %q", got, tc.kind, tc.field)
			}
			if enc.calls.Load() != tc.calls {
				t.Fatalf("encoder calls = %d, want %d", enc.calls.Load(), tc.calls)
			}
		})
	}
}

func TestPayload(t *testing.T) {
	enc := &stubEncoder{}
	srv := newTestServer(t, enc)
	body := `{"type":"wifi","fields":{"ssid":"my;wifi","password":"p:w","hidden":true}}`
	rec := do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/payload", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got payloadResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != content.WiFi || got.Payload != `WIFI:T:WPA;S:my\;wifi;P:p\:w;H:true;;` {
		t.Fatalf("unexpected payload %+v", got)
	}
	if enc.calls.Load() != 0 {
		t.Fatalf("payload must not encode")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})
	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if _, err := openapi.Parse(context.Background(), rec.Body.Bytes()); err != nil {
		t.Fatalf("served document does not parse: %v", err)
	}
}

func TestIndexRedirectsToFirstType(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	rec := do(t, srv, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/types/text?lang=de" {
		t.Fatalf("unexpected redirect %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestShowFormNegotiatesLocale(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})
	req := httptest.NewRequest(http.MethodGet, "/types/wifi", nil)
	req.Header.Set("Accept-Language", "fr-CH, de;q=0.8")
	rec := do(t, srv, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Language"); got != "de" {
		t.Fatalf("content language = %q", got)
	}
	body := rec.Body.String()
	for _, want := range []string{`lang="de"`, `name="ssid"`, `name="lang" value="de"`, `aria-current="page"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}

	rec = do(t, srv, httptest.NewRequest(http.MethodGet, "/types/fax", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown type status = %d", rec.Code)
	}
}

func TestSubmitFormValidation(t *testing.T) {
	enc := &stubEncoder{}
	srv := newTestServer(t, enc)
	form := url.Values{"ssid": {""}, "encryption": {"WPA"}, "style.fill": {"#000000"}}
	req := httptest.NewRequest(http.MethodPost, "/types/wifi", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, srv, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Network name (SSID) is required") {
		t.Fatalf("expected inline error, got:\n%s", rec.Body.String())
	}
	if enc.calls.Load() != 0 {
		t.Fatalf("encoder must not run for invalid input")
	}
}

func TestSubmitFormBuildsPreview(t *testing.T) {
	enc := &stubEncoder{}
	srv := newTestServer(t, enc)
	form := url.Values{
		"ssid":         {"lab"},
		"encryption":   {"WEP"},
		"hidden":       {"false", "on"},
		"style.module": {"circle"},
		"style.fill":   {"#112233"},
		"style.back":   {"#ffffff"},
		"style.format": {"jpeg"},
		"lang":         {"de"},
	}
	req := httptest.NewRequest(http.MethodPost, "/types/wifi", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, srv, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d:\n%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"data:image/jpeg;base64,",
		"WIFI:T:WEP;S:lab;P:;H:true;;",
		`lang="de"`,
		`.jpeg`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestSubmitFormStyleError(t *testing.T) {
	srv := newTestServer(t, &stubEncoder{})
	form := url.Values{"text": {"hi"}, "style.fill": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/types/text", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, srv, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "qrform-field-errors") {
		t.Fatalf("expected field error list in page")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	enc := &stubEncoder{}
	srv, err := New(config.Default(), dispatcher.New(enc, dispatcher.WithObserver(m)), WithMetrics(m))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/build", strings.NewReader(`{"type":"text","fields":{"text":"a"}}`)))

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{`qrform_builds_total{outcome="ok",type="text"} 1`, `route="/api/v1/build"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics:\n%s", want, body)
		}
	}
}
