package worker

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// CronLogger adapts slog to cron.Logger so scheduler events land in the
// worker's structured log.
func CronLogger(logger *slog.Logger) cron.Logger {
	return cronLogger{logger: logger.With(slog.String("component", "cron"))}
}

type cronLogger struct{ logger *slog.Logger }

// Info is debug-level: cron reports every wake-up through it.
func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
