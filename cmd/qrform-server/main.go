// Command qrform-server serves the QR forms and JSON API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-qrform/internal/cache"
	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/internal/metrics"
	"github.com/goliatone/go-qrform/internal/server"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/encoder"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "qrform-server: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("qrform-server", flag.ContinueOnError)
	cfg.BindServerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.AppEnv, os.Stderr)
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	raster, err := cfg.Encoder.Raster()
	if err != nil {
		return err
	}
	var enc encoder.Encoder = raster
	var options []server.Option

	if cfg.Redis.Addr != "" {
		rc, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		enc = encoder.NewCached(raster, rc, encoder.WithCacheErrorHook(cacheErrorHook(logger, m)))
		options = append(options, server.WithHealthCheck("redis", rc.HealthCheck))
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("redis image cache enabled")
	}

	disp := dispatcher.New(enc, dispatcher.WithObserver(m), dispatcher.WithLogger(logger))
	options = append(options, server.WithLogger(logger), server.WithMetrics(m))

	srv, err := server.New(cfg, disp, options...)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("env", cfg.AppEnv).Str("locale", cfg.Locale).Msg("starting")
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func cacheErrorHook(logger zerolog.Logger, m *metrics.Metrics) func(op string, err error) {
	return func(op string, err error) {
		logger.Warn().Err(err).Str("op", op).Msg("image cache unavailable")
		m.ObserveCacheError(op, err)
	}
}
