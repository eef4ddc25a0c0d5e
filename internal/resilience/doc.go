// Package resilience provides reliability patterns for the lesson store.
//
// The package supports:
//   - A circuit breaker decorator for the database-backed LessonRepository
//   - Retry logic with exponential backoff and jitter for opening the
//     database and publishing a release
//
// Usage Example:
//
//	repo := circuitbreaker.NewLessonRepo(sqlite.NewLessonRepo(db))
//
//	err := retry.WithBackoff(ctx, retry.PublishConfig(), func() error {
//	    return publisher.ReplaceRelease(ctx, release, lessons)
//	})
package resilience
