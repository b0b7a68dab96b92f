package testdata

import (
	"io"
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// SetTestLogger routes the default logger into t.Log so output is attached to the failing test.
func SetTestLogger(t *testing.T) {
	f := slogt.Factory(func(w io.Writer) slog.Handler {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	})
	slog.SetDefault(slogt.New(t, f))
}
