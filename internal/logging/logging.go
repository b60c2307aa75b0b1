// Package logging builds the zerolog loggers shared by the commands and the
// HTTP server.
package logging

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a logger for appEnv writing to out (stderr when nil). JSON
// at info level by default; development switches to a console writer at
// debug level.
func New(appEnv string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	level := zerolog.InfoLevel
	dev := isDevelopment(appEnv)
	if dev {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	if dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return logger
}

func isDevelopment(appEnv string) bool {
	switch strings.ToLower(strings.TrimSpace(appEnv)) {
	case "development", "dev":
		return true
	default:
		return false
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}

// Middleware logs one line per request. requestID extracts the id assigned
// by an earlier middleware; it may be nil.
func Middleware(l zerolog.Logger, requestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			event := l.Info()
			if rw.status >= http.StatusInternalServerError {
				event = l.Error()
			}
			if requestID != nil {
				if id := requestID(r); id != "" {
					event = event.Str("request_id", id)
				}
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Int("bytes", rw.bytes).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		})
	}
}
