package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "quickmart"

// New creates a preconfigured slog.Logger.
func New() *slog.Logger {
	return newLogger(os.Stdout)
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}
