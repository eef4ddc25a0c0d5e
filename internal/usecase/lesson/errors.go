// Package lesson provides the read use cases of the course catalog:
// looking up a lesson by its (module, lesson) pair, listing, searching and
// rendering lesson markdown to HTML.
package lesson

import (
	"errors"

	"pycourse/internal/domain/entity"
)

// Sentinel errors for lesson use case operations.
var (
	// ErrLessonNotFound indicates that the (module, lesson) pair is not published.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrInvalidLessonID indicates a module or lesson number that is not positive.
	// It is the same value as entity.ErrInvalidLessonID.
	ErrInvalidLessonID = entity.ErrInvalidLessonID

	// ErrModuleNotFound indicates that a module has no published lessons.
	ErrModuleNotFound = errors.New("module not found")

	// ErrEmptyQuery indicates a search query without any keyword.
	ErrEmptyQuery = errors.New("search query is empty")
)
