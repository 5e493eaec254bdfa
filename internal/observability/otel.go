// Package observability bootstraps OpenTelemetry tracing for the prompt
// backend: an OTLP/gRPC span exporter, a resource describing the service and
// the SQLite store it fronts, and W3C trace-context propagation. HTTP spans
// come from the otelgin middleware and store spans from the GORM tracing
// plugin; this package only wires the pipeline they feed.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"google.golang.org/grpc/credentials"

	"github.com/promptkeep/go-prompt-backend/internal/config"
)

// buildExporter and buildResource are indirected so failure paths can be
// exercised without a live collector.
var (
	buildExporter = func(ctx context.Context, cfg config.OTELConfig) (sdktrace.SpanExporter, error) {
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		} else {
			opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
		}
		return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	}

	buildResource = serviceResource
)

// serviceResource describes this deployment for every exported span: the
// service identity, the environment it runs in, and the SQLite file backing
// the prompt store. Backends group and filter traces by these attributes.
func serviceResource(ctx context.Context, cfg config.Config, version string) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.OTEL.ServiceName),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironment(cfg.OTEL.Environment),
			semconv.DBSystemSqlite,
			attribute.String("db.namespace", cfg.DBPath),
		),
	)
}

// SetupOTel installs the global tracer provider and propagator when tracing
// is enabled, and returns the provider's shutdown function. Disabled, it
// returns a no-op shutdown and leaves the globals untouched, so callers can
// defer the result unconditionally.
func SetupOTel(ctx context.Context, cfg config.Config, version string) (func(context.Context) error, error) {
	if !cfg.OTEL.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := buildExporter(ctx, cfg.OTEL)
	if err != nil {
		return nil, err
	}
	res, err := buildResource(ctx, cfg, version)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.OTEL.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
