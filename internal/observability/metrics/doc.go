// Package metrics holds the business Prometheus collectors: lesson lookups,
// render cache efficiency and catalog publishing.
//
// HTTP request metrics live with the HTTP middleware in handler/http.
// All collectors register with the default registry and are exposed on /metrics.
//
// Example usage:
//
//	start := time.Now()
//	report, err := publisher.Publish(ctx, bundle)
//	metrics.RecordPublish("published", report.Lessons, time.Since(start))
package metrics
