package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("rendered") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("rendered") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("rendered") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("rendered") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if got := strings.Contains(buf.String(), "rendered"); got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Rendered box")

	out := buf.String()
	if !strings.Contains(out, "Rendered box (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want message with duration", out)
	}
	if p.elapsed() < 0 {
		t.Error("elapsed should not be negative")
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), l))
	if got != l {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("hello")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its writer")
	}
}
