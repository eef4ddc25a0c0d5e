package lesson

import (
	"errors"
	"net/http"

	"pycourse/internal/domain/entity"
	"pycourse/internal/handler/http/pathutil"
	"pycourse/internal/handler/http/respond"
	lessonUC "pycourse/internal/usecase/lesson"
)

// SearchHandler serves GET /lessons/search?q=<keywords>[&module=<n>].
// Keywords are space separated and all must match.
type SearchHandler struct{ Svc *lessonUC.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("q query param required"))
		return
	}

	module := 0
	if s := q.Get("module"); s != "" {
		n, err := pathutil.ParseNumber(s)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid module: must be a positive integer"))
			return
		}
		module = n
	}

	lessons, err := h.Svc.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	if module > 0 {
		lessons = inModule(lessons, module)
	}
	respond.JSON(w, http.StatusOK, toSummaries(lessons))
}

func inModule(lessons []*entity.Lesson, module int) []*entity.Lesson {
	out := lessons[:0]
	for _, l := range lessons {
		if l.ModuleNumber == module {
			out = append(out, l)
		}
	}
	return out
}
