package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON slog logger tagged with the service name. Services take
// it through their constructors instead of reaching for a global.
func New(service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler).With(slog.String("service", service))
}

// Discard is for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
