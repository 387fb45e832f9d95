// Package main runs the library backend HTTP API.
//
// Configuration comes from the environment and an optional .env file, see package config.
// With OTEL_ENABLED=true, traces and metrics of every use case and store operation are exported via OTLP/HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/httpapi"
	"github.com/AntonStoeckl/library-backend-go/library/shared/credentials"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-backend-go/librarystore/oteladapters"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

const (
	version             = "1.0.0"
	instrumentationName = "github.com/AntonStoeckl/library-backend-go"

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "libraryserver: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	storeOptions := []sqlengine.Option{sqlengine.WithLogger(logger)}
	settings := httpapi.HandlerSettings{
		OverdueThreshold: cfg.OverdueThreshold,
		AllowAdminSignup: cfg.AllowAdminSignup,
		Logger:           logger,
	}

	var observableOptions []observable.Option

	if cfg.OTELEnabled {
		providers, providersErr := config.NewObservabilityProviders(ctx, cfg, version)
		if providersErr != nil {
			return fmt.Errorf("setting up OpenTelemetry: %w", providersErr)
		}

		defer func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				logger.Error("shutting down OpenTelemetry providers failed", "error", shutdownErr)
			}
		}()

		metrics := oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName))
		tracing := oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName))
		contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(cfg.ServiceName, logger.Handler())

		storeOptions = append(storeOptions,
			sqlengine.WithMetrics(metrics),
			sqlengine.WithTracing(tracing),
			sqlengine.WithContextualLogger(contextualLogger),
		)
		observableOptions = append(observableOptions,
			observable.WithMetrics(metrics),
			observable.WithTracing(tracing),
			observable.WithContextualLogging(contextualLogger),
		)
		settings.ContextualLogger = contextualLogger
	} else {
		observableOptions = append(observableOptions, observable.WithLogging(logger))
	}

	store, closeStore, err := config.OpenStore(ctx, cfg, storeOptions...)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Error("closing database failed", "error", closeErr)
		}
	}()

	if err = store.CreateSchema(ctx); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	service, err := credentials.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	handlers, err := httpapi.NewHandlers(store, service, settings, observableOptions...)
	if err != nil {
		return err
	}

	serverOptions := []httpapi.Option{
		httpapi.WithCORSOrigins(cfg.CORSAllowedOrigins),
		httpapi.WithAuthRateLimit(cfg.AuthRateLimitPerMinute),
	}

	if cfg.TrustProxyHeaders {
		serverOptions = append(serverOptions, httpapi.WithTrustedProxyHeaders())
	}

	server := httpapi.NewServer(handlers, service, logger, serverOptions...)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("library backend listening", "addr", cfg.HTTPAddr, "driver", cfg.DatabaseDriver, "version", version)

		if listenErr := httpServer.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			serveErr <- listenErr
		}
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down library backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
