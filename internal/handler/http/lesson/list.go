package lesson

import (
	"log/slog"
	"net/http"
	"time"

	"pycourse/internal/common/pagination"
	"pycourse/internal/handler/http/pathutil"
	"pycourse/internal/handler/http/respond"
	"pycourse/internal/observability/logging"
	lessonUC "pycourse/internal/usecase/lesson"
)

// ListHandler serves the paginated GET /lessons.
type ListHandler struct {
	Svc           *lessonUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP レッスン一覧（ページネーション対応）
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.Any("error", err))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.List(ctx, params)
	if err != nil {
		logger.Error("failed to list lessons",
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit),
			slog.Any("error", err))
		writeError(w, err)
		return
	}

	resp := pagination.NewResponse(toSummaries(result.Data), result.Pagination)
	logger.Debug("paginated lesson list",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", len(resp.Data)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, resp)
}

// ModulesHandler serves GET /modules.
type ModulesHandler struct{ Svc *lessonUC.Service }

func (h ModulesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Svc.Modules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toModules(modules))
}

// ModuleLessonsHandler serves GET /modules/{module}/lessons.
type ModuleLessonsHandler struct{ Svc *lessonUC.Service }

func (h ModuleLessonsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	module, err := pathutil.ModuleFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lessons, err := h.Svc.ModuleLessons(r.Context(), module)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toSummaries(lessons))
}
