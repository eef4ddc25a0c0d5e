package pathutil

import (
	"net/http"
	"strconv"

	"pycourse/internal/domain/entity"
)

// ErrInvalidID is returned when a path segment is not a positive integer.
// It is entity.ErrInvalidLessonID so handlers map it like any other bad id.
var ErrInvalidID = entity.ErrInvalidLessonID

// ParseNumber parses a positive decimal path segment.
func ParseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

// ModuleFromRequest reads the {module} wildcard of the matched route.
func ModuleFromRequest(r *http.Request) (int, error) {
	return ParseNumber(r.PathValue("module"))
}

// LessonIDFromRequest reads the {module} and {lesson} wildcards of the
// matched route.
func LessonIDFromRequest(r *http.Request) (entity.LessonID, error) {
	module, err := ModuleFromRequest(r)
	if err != nil {
		return entity.LessonID{}, err
	}
	lesson, err := ParseNumber(r.PathValue("lesson"))
	if err != nil {
		return entity.LessonID{}, err
	}
	return entity.LessonID{Module: module, Lesson: lesson}, nil
}
