// Package testutil holds helpers shared by dirsweep's package tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug-level logger whose output lands in t.Log,
// so the walker's match/skip traces and the applier's failure lines show
// up on test failure or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// logSink is the slice of testing.TB the writer needs.
type logSink interface {
	Helper()
	Log(args ...any)
}

// logWriter adapts a test log to io.Writer. slog terminates every record
// with a newline and t.Log adds its own, so the trailing one is stripped.
type logWriter struct {
	sink logSink
}

func (w logWriter) Write(p []byte) (int, error) {
	w.sink.Helper()
	w.sink.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
