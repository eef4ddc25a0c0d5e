// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lesson metrics track reads of the catalog.
var (
	// LessonLookupsTotal counts single-lesson lookups by outcome
	LessonLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_lookups_total",
			Help: "Total number of lesson lookups",
		},
		[]string{"result"}, // result: found, not_found, invalid, error
	)

	// LessonSearchesTotal counts keyword searches
	LessonSearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lesson_searches_total",
			Help: "Total number of lesson searches",
		},
	)

	// RenderCacheTotal counts render cache lookups by outcome
	RenderCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_render_cache_total",
			Help: "Render cache lookups",
		},
		[]string{"result"}, // result: hit, miss, error
	)

	// RenderDuration measures time to render a lesson to HTML
	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lesson_render_duration_seconds",
			Help:    "Time taken to render a lesson to HTML",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		},
	)
)

// Publish metrics track catalog releases.
var (
	// LessonsPublished is the number of lessons in the current release
	LessonsPublished = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lessons_published",
			Help: "Number of lessons in the published catalog",
		},
	)

	// CatalogPublishTotal counts publish runs by status
	CatalogPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_publish_total",
			Help: "Total number of catalog publish runs",
		},
		[]string{"status"}, // status: published, unchanged, failed
	)

	// CatalogPublishDuration measures a publish run
	CatalogPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_publish_duration_seconds",
			Help:    "Time taken to publish the catalog",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)
