// Package observability groups the logging, metrics and tracing packages
// shared by the pycourse binaries.
//
// Subpackages:
//   - logging: slog construction and request-scoped fields
//   - metrics: Prometheus collectors for lesson lookups, rendering and publishing
//   - tracing: OpenTelemetry provider setup and HTTP middleware
package observability
