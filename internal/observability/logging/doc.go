// Package logging builds the slog loggers used by the pycourse binaries and
// carries request-scoped fields (request id, trace id) into log records.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    log := logging.WithRequestID(r.Context(), slog.Default())
//	    log.Info("lesson served")
//	}
package logging
