// Package responsewriter wraps http.ResponseWriter so middleware can see the
// status code and body size a handler produced.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the status and byte count of a response.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
}

// Wrap returns w unchanged if it is already a *ResponseWriter, so stacked
// middleware share one recorder.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader forwards the first call only.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.statusCode = statusCode
	w.headerWritten = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// StatusCode returns the status sent, or 200 if nothing was written yet.
func (w *ResponseWriter) StatusCode() int {
	return w.statusCode
}

// BytesWritten returns the body size written so far.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytesWritten
}

// HeaderWritten reports whether the status line has been sent.
func (w *ResponseWriter) HeaderWritten() bool {
	return w.headerWritten
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
