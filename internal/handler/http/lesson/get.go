package lesson

import (
	"net/http"

	"pycourse/internal/handler/http/pathutil"
	"pycourse/internal/handler/http/respond"
	lessonUC "pycourse/internal/usecase/lesson"
	"pycourse/pkg/security/csp"
)

// GetHandler serves GET /modules/{module}/lessons/{lesson}.
type GetHandler struct{ Svc *lessonUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.LessonIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	l, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if setValidators(w, r, quote(l.Checksum)) {
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(l))
}

// RawHandler serves the lesson markdown as-is.
type RawHandler struct{ Svc *lessonUC.Service }

// ServeHTTP レッスン本文（Markdown）
func (h RawHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.LessonIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	l, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if setValidators(w, r, quote(l.Checksum+".md")) {
		return
	}
	respond.Text(w, http.StatusOK, "text/markdown; charset=utf-8", []byte(l.Body))
}

// htmlPolicy forbids scripts in rendered lessons.
var htmlPolicy = csp.LessonHTMLPolicy()

// HTMLHandler serves the lesson rendered to an HTML fragment.
type HTMLHandler struct{ Svc *lessonUC.Service }

func (h HTMLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.LessonIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, l, err := h.Svc.RenderHTML(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if setValidators(w, r, quote(l.Checksum+".html")) {
		return
	}
	htmlPolicy.Apply(w)
	respond.Text(w, http.StatusOK, "text/html; charset=utf-8", out)
}
