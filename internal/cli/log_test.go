package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/handiism/album-grid/internal/generate"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressLogger(t *testing.T) {
	var buf bytes.Buffer
	forward := progressLogger(newLogger(&buf, log.InfoLevel))

	forward(generate.ProgressEvent{Message: "fetched a cover", Level: generate.LevelVerbose})
	if buf.Len() != 0 {
		t.Errorf("verbose event logged at info level: %q", buf.String())
	}

	forward(generate.ProgressEvent{Message: "cover missing", Level: generate.LevelWarning})
	if !strings.Contains(buf.String(), "cover missing") || !strings.Contains(buf.String(), "WARN") {
		t.Errorf("warning not logged: %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	ctx := context.Background()
	if loggerFromContext(ctx) != log.Default() {
		t.Error("expected default logger for empty context")
	}

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(ctx, l)) != l {
		t.Error("expected logger from context")
	}
}
