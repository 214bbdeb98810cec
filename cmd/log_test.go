package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}

	buf.Reset()
	logger.Debug("debug message")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level, got %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.DebugLevel))
	prog.done("Verified 3 fixtures")

	out := buf.String()
	if !strings.Contains(out, "Verified 3 fixtures") || !strings.Contains(out, "s)") {
		t.Errorf("expected message with elapsed time, got %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected default logger for bare context")
	}

	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("expected logger attached to context")
	}
}
