package metrics

import "time"

// Lookup outcomes recorded by RecordLessonLookup.
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupInvalid  = "invalid"
	LookupError    = "error"
)

// Publish statuses recorded by RecordPublish.
const (
	PublishPublished = "published"
	PublishUnchanged = "unchanged"
	PublishFailed    = "failed"
)

// RecordLessonLookup counts one lesson lookup with the given outcome.
func RecordLessonLookup(result string) {
	LessonLookupsTotal.WithLabelValues(result).Inc()
}

// RecordLessonSearch counts one keyword search.
func RecordLessonSearch() {
	LessonSearchesTotal.Inc()
}

// RecordRenderCache counts a render cache hit, miss or error.
func RecordRenderCache(result string) {
	RenderCacheTotal.WithLabelValues(result).Inc()
}

// RecordRenderDuration records the time taken to render one lesson.
func RecordRenderDuration(d time.Duration) {
	RenderDuration.Observe(d.Seconds())
}

// RecordPublish records the outcome of a publish run.
// A failed run leaves the published gauge untouched.
func RecordPublish(status string, lessons int, d time.Duration) {
	CatalogPublishTotal.WithLabelValues(status).Inc()
	CatalogPublishDuration.Observe(d.Seconds())
	if status != PublishFailed {
		LessonsPublished.Set(float64(lessons))
	}
}
