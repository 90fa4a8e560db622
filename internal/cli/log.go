package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/handiism/album-grid/internal/generate"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Saved grid.png (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// progressLogger forwards manager events to l. Verbose events are logged at
// debug level, so they only show with --verbose.
func progressLogger(l *log.Logger) func(generate.ProgressEvent) {
	return func(e generate.ProgressEvent) {
		switch e.Level {
		case generate.LevelError:
			l.Error(e.Message)
		case generate.LevelWarning:
			l.Warn(e.Message)
		case generate.LevelVerbose:
			l.Debug(e.Message)
		default:
			l.Info(e.Message)
		}
	}
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	settingsKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
