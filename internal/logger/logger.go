// Package logger holds the structured logger shared by the docbuf packages.
//
// Output is discarded until a caller installs a logger with Set.
package logger

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(discard())
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// L returns the active logger.
func L() *slog.Logger {
	return current.Load()
}

// Set replaces the active logger. A nil logger restores the discarding default.
func Set(l *slog.Logger) {
	if l == nil {
		l = discard()
	}
	current.Store(l)
}
