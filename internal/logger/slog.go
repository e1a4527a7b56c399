package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewSlogLogger создает JSON логгер в stdout с минимальным уровнем INFO
func NewSlogLogger() *slog.Logger {
	return newLogger(os.Stdout)
}

func newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}
