package tracing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"pycourse/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "pycourse"

// Exporter names accepted in OTEL_TRACES_EXPORTER.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config selects the span exporter and sampling for a process.
type Config struct {
	ServiceName string
	Version     string
	Exporter    string
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// LoadConfig reads OTEL_TRACES_EXPORTER, OTEL_EXPORTER_OTLP_ENDPOINT,
// OTEL_EXPORTER_OTLP_INSECURE and OTEL_SAMPLER_RATIO.
func LoadConfig(serviceName, version string) Config {
	cfg := Config{
		ServiceName: serviceName,
		Version:     version,
		Exporter:    strings.ToLower(config.GetEnvString("OTEL_TRACES_EXPORTER", ExporterNone)),
		Endpoint:    config.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Insecure:    config.GetEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio: config.GetEnvFloat("OTEL_SAMPLER_RATIO", 1.0),
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		slog.Warn("OTEL_SAMPLER_RATIO must be within [0,1], using 1.0",
			slog.Float64("value", cfg.SampleRatio))
		cfg.SampleRatio = 1.0
	}
	return cfg
}

// Tracer returns the tracer used for spans created inside pycourse.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Init installs the global tracer provider and propagator. With the "none"
// exporter spans are still created (so trace ids appear in logs) but never
// exported. The returned function flushes and stops the provider.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("tracing exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
	)
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("tracing initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("exporter", cfg.Exporter))
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	case ExporterOTLP:
		var opts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown exporter %q", cfg.Exporter)
	}
}
