package lesson

import (
	"errors"
	"net/http"

	"pycourse/internal/handler/http/respond"
	"pycourse/internal/repository"
	lessonUC "pycourse/internal/usecase/lesson"
)

// writeError maps use case errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, lessonUC.ErrInvalidLessonID), errors.Is(err, lessonUC.ErrEmptyQuery):
		code = http.StatusBadRequest
	case errors.Is(err, lessonUC.ErrLessonNotFound), errors.Is(err, lessonUC.ErrModuleNotFound):
		code = http.StatusNotFound
	case errors.Is(err, repository.ErrUnavailable):
		code = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", "30")
	}
	respond.SafeError(w, code, err)
}
