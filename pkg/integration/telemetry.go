package integration

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-logr/logr"
	"github.com/lmittmann/tint"
	slogotel "github.com/remychantenay/slog-otel"
	"go.opentelemetry.io/otel"
)

// ConfigureLogProvider installs the process-wide slog logger and bridges otel's internal logger to it.
func ConfigureLogProvider(w io.Writer, level string, format string) {
	lvl := slog.LevelInfo
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		//nolint:forbidigo,revive
		fmt.Fprintf(w, "failed to parse log level: %v, fallback to INFO\n", err)
	}
	l := slog.New(slogotel.OtelHandler{Next: NewLogHandler(w, lvl, format), NoTraceEvents: true})

	slog.SetDefault(l)
	otel.SetLogger(logr.FromSlogHandler(l.Handler()))
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		slog.Error("otel error", "err", err)
	}))
}

func NewLogHandler(w io.Writer, level slog.Leveler, format string) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
}
