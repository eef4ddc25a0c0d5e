package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pycourse/internal/pkg/config"
)

// Job run statuses.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics are the republish job metrics, plus the worker's configuration metrics.
type Metrics struct {
	*config.ConfigMetrics

	JobRunsTotal          *prometheus.CounterVec
	JobDurationSeconds    prometheus.Histogram
	LastSuccessTimestamp  prometheus.Gauge
	LessonsPublishedTotal prometheus.Counter
}

// NewMetrics registers the worker metrics with the default registry.
// Call it once per process.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the worker metrics with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ConfigMetrics: config.NewConfigMetricsWith("worker", f),
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_publish_job_runs_total",
			Help: "Total number of republish job runs by status (started/success/failure)",
		}, []string{"status"}),
		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_publish_job_duration_seconds",
			Help:    "Duration of republish job runs in seconds",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 300},
		}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_publish_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful republish job run",
		}),
		LessonsPublishedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_publish_job_lessons_written_total",
			Help: "Total number of lessons written by republish runs that changed the catalog",
		}),
	}
}

func (m *Metrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

func (m *Metrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}

// RecordLessonsWritten counts lessons written by a run. Skipped runs write none.
func (m *Metrics) RecordLessonsWritten(n int) {
	m.LessonsPublishedTotal.Add(float64(n))
}
