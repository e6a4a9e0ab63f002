package ember

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for debug stats and soft warnings.
// Passing nil restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
