package taglib

import (
	"log/slog"
	"os"
	"sync"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// debugSink is the process-wide, write-only logging sink spec.md §5
// allows as the one piece of shared global state: "an optional
// debug-logging sink (process-wide, write-only, threadsafe at the sink's
// discretion)". It defaults to a zerolog-backed slog.Logger writing to
// stderr at warn level, matching the teacher's indirect zerolog/slog-bridge
// stack (promoted to direct use here).
var (
	sinkMu sync.RWMutex
	sink   = defaultSink()
)

func defaultSink() *slog.Logger {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	handler := slogzerolog.Option{Level: slog.LevelWarn, Logger: &zl}.NewZerologHandler()

	return slog.New(handler)
}

// SetLogger installs a replacement debug sink. Passing nil restores the
// default zerolog-backed sink. Safe to call concurrently with logging
// calls, though not with itself from multiple goroutines racing to set
// different loggers.
func SetLogger(l *slog.Logger) {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	if l == nil {
		sink = defaultSink()

		return
	}

	sink = l
}

// Logger returns the current debug sink.
func Logger() *slog.Logger {
	sinkMu.RLock()
	defer sinkMu.RUnlock()

	return sink
}

// logMalformed records a MalformedHeader/TruncatedInput condition on the
// debug sink at Warn level. No code in this module calls it: the format
// packages return those conditions as wrapped errors instead.
func logMalformed(component, msg string, args ...any) {
	Logger().Warn(msg, append([]any{"component", component}, args...)...)
}
