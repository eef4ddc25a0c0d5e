package lesson

import (
	"log/slog"
	"net/http"

	"pycourse/internal/common/pagination"
	lessonUC "pycourse/internal/usecase/lesson"
)

// Register mounts the lesson endpoints on mux.
func Register(mux *http.ServeMux, svc *lessonUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /modules", ModulesHandler{svc})
	mux.Handle("GET /modules/{module}/lessons", ModuleLessonsHandler{svc})
	mux.Handle("GET /modules/{module}/lessons/{lesson}", GetHandler{svc})
	mux.Handle("GET /modules/{module}/lessons/{lesson}/raw", RawHandler{svc})
	mux.Handle("GET /modules/{module}/lessons/{lesson}/html", HTMLHandler{svc})

	mux.Handle("GET /lessons", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /lessons/search", SearchHandler{svc})
}
