// Package telemetry wires the process-wide slog logger and the OpenTelemetry
// trace and log providers.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"souvenirspartan/internal/config"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "souvenirspartan"

// Shutdown flushes exporters and sinks.
type Shutdown func(context.Context) error

// Setup installs the default slog logger and, when an OTLP endpoint is configured, the
// global tracer provider. The returned Shutdown is always safe to call.
func Setup(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	handlers := []slog.Handler{ConsoleHandler(os.Stdout, cfg.Logging)}
	var closers []func(context.Context) error

	if cfg.OTLPEndpoint != "" {
		res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
		if err != nil {
			return nil, fmt.Errorf("build otel resource: %w", err)
		}

		// exporters read OTEL_EXPORTER_OTLP_ENDPOINT and append the signal paths
		traceExp, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExp), sdktrace.WithResource(res))
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
		closers = append(closers, tp.Shutdown)

		logExp, err := otlploghttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create log exporter: %w", err)
		}
		lp := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)), sdklog.WithResource(res))
		closers = append(closers, lp.Shutdown)
		handlers = append(handlers, otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(lp)))
	}

	if cfg.Logging.Container != "" {
		blobLog, err := NewAppendBlobHandler(ctx, AppendBlobConfig{
			AccountName: cfg.Fixtures.AccountName,
			AccountKey:  cfg.Fixtures.AccountKey,
			Container:   cfg.Logging.Container,
		})
		if err != nil {
			return nil, fmt.Errorf("create log sink: %w", err)
		}
		closers = append(closers, func(context.Context) error { return blobLog.Close() })
		handlers = append(handlers, blobLog)
	}

	slog.SetDefault(slog.New(Fanout(handlers...)))

	return func(ctx context.Context) error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i](ctx))
		}
		return errors.Join(errs...)
	}, nil
}

// ConsoleHandler is the stdout handler: text by default, JSON when LOG_FORMAT=json.
func ConsoleHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
