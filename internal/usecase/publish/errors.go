// Package publish verifies a content bundle and publishes it as the current
// catalog release in the database.
package publish

import "errors"

var (
	// ErrInvalidBundle indicates that verification found at least one error.
	ErrInvalidBundle = errors.New("bundle failed verification")

	// ErrNoPublisher indicates a Service without a LessonPublisher.
	ErrNoPublisher = errors.New("no lesson publisher configured")
)
