package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of mobais spans.
const TracerName = "github.com/mobais/mobais"

// TracingConfig configures OTLP/HTTP export.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
	Version     string
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// SetupTracing installs a global tracer provider exporting to cfg.Endpoint.
// When tracing is disabled the global no-op provider is left in place and
// the returned shutdown does nothing.
func SetupTracing(ctx context.Context, cfg TracingConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create otlp exporter: %w", err)
	}

	tp := NewTracerProvider(sdktrace.WithBatcher(exporter), cfg.ServiceName, cfg.Version)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewTracerProvider builds a provider with the service resource attached.
func NewTracerProvider(processor sdktrace.TracerProviderOption, service, version string) *sdktrace.TracerProvider {
	if service == "" {
		service = "mobais"
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", service),
		attribute.String("service.version", version),
	)
	return sdktrace.NewTracerProvider(processor, sdktrace.WithResource(res))
}

// Tracer returns the mobais tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// Span attribute keys.
const (
	AttrIntent    = attribute.Key("mobais.intent")
	AttrTurnID    = attribute.Key("mobais.turn_id")
	AttrDelegated = attribute.Key("mobais.delegated")
	AttrCharacter = attribute.Key("mobais.character")
)
