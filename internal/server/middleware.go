package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	localeKey    contextKey = "locale"
)

// RequestID propagates X-Request-ID or assigns a fresh uuid.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the id assigned by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Locale negotiates the form locale from ?lang, X-Locale and
// Accept-Language, in that order of preference. fallback is used when the
// request states no preference at all.
func Locale(match func(...string) string, fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var prefs []string
			for _, candidate := range []string{
				r.URL.Query().Get("lang"),
				r.Header.Get("X-Locale"),
				r.Header.Get("Accept-Language"),
			} {
				if candidate != "" {
					prefs = append(prefs, candidate)
				}
			}
			if len(prefs) == 0 && fallback != "" {
				prefs = append(prefs, fallback)
			}
			locale := match(prefs...)
			w.Header().Set("Content-Language", locale)
			ctx := context.WithValue(r.Context(), localeKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the negotiated locale.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey).(string); ok {
		return v
	}
	return ""
}
