package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// InitLogger installs the process-wide slog logger. format is "json" or "text".
func InitLogger(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	slog.Info(message,
		slog.String("module", strings.ToUpper(module)),
		slog.String("action", action),
		slog.String("request_id", strings.TrimSpace(requestID)),
	)
}

// LogWarn is LogEvent at warn level, with the error attached.
func LogWarn(requestID, module, action string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	slog.Warn(msg,
		slog.String("module", strings.ToUpper(module)),
		slog.String("action", action),
		slog.String("request_id", strings.TrimSpace(requestID)),
	)
}
