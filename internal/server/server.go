// Package server exposes the JSON API and the HTML forms over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/internal/metrics"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/openapi"
	"github.com/goliatone/go-qrform/pkg/orchestrator"
	"github.com/goliatone/go-qrform/pkg/renderers/vanilla"
	"github.com/goliatone/go-qrform/pkg/style"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request and diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables the /metrics endpoint and request instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithOrchestrator replaces the form orchestrator.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orchestrator = o
	}
}

// WithPalettes replaces the colour presets accepted by the API.
func WithPalettes(p *style.Palettes) Option {
	return func(s *Server) {
		s.palettes = p
	}
}

// WithHealthCheck adds a named dependency probe to /healthz.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) {
		if name != "" && check != nil {
			s.checks[name] = check
		}
	}
}

// Server wires the dispatcher and the orchestrator to HTTP routes.
type Server struct {
	cfg          config.Config
	logger       zerolog.Logger
	dispatcher   *dispatcher.Dispatcher
	orchestrator *orchestrator.Orchestrator
	palettes     *style.Palettes
	metrics      *metrics.Metrics
	checks       map[string]HealthCheck
	openapi      []byte
	router       chi.Router
	http         *http.Server
}

// New builds the router. The OpenAPI document is generated once here.
func New(cfg config.Config, disp *dispatcher.Dispatcher, options ...Option) (*Server, error) {
	if disp == nil {
		return nil, errors.New("server: dispatcher is required")
	}
	s := &Server{
		cfg:        cfg,
		logger:     zerolog.Nop(),
		dispatcher: disp,
		checks:     map[string]HealthCheck{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orchestrator == nil {
		s.orchestrator = orchestrator.New()
	}
	if s.palettes == nil {
		s.palettes = style.DefaultPalettes()
	}

	doc, err := openapi.JSON()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.openapi = doc
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		RequestID,
		middleware.RealIP,
		logging.Middleware(s.logger, func(r *http.Request) string { return RequestIDFromContext(r.Context()) }),
		middleware.Recoverer,
	)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get(openapi.PathHealth, s.health)
	r.Get("/openapi.json", s.openAPI)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/types", s.listTypes)
		r.Get("/types/{type}", s.getType)
		r.Post("/build", s.build)
		r.Post("/payload", s.payload)
	})

	r.Group(func(r chi.Router) {
		r.Use(Locale(s.orchestrator.MatchLocale, s.cfg.Locale))
		r.Get("/", s.index)
		r.Get("/types/{type}", s.showForm)
		r.Post("/types/{type}", s.submitForm)
	})
	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
