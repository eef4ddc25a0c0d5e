// Package tracing wires OpenTelemetry into the lesson API.
//
// Init installs a global tracer provider whose exporter is chosen by
// OTEL_TRACES_EXPORTER (none, stdout, otlp). Middleware opens one server
// span per request, and Tracer is used by the use cases for child spans.
//
//	shutdown, err := tracing.Init(ctx, tracing.LoadConfig("pycourse-api", version))
//	if err != nil { ... }
//	defer shutdown(context.Background())
package tracing
