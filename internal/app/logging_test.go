package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"DEBUG":   LogLevelDebug,
		"info":    LogLevelInfo,
		"warn":    LogLevelWarn,
		"Warning": LogLevelWarn,
		"error":   LogLevelError,
		"verbose": LogLevelInfo,
		"":        LogLevelInfo,
	}

	for input, expected := range tests {
		if got := ParseLogLevel(input); got != expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", input, got, expected)
		}
	}
}

func newTestLogger(level LogLevel, prefix string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: prefix})
	l.sink.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	}
	return l, &buf
}

func TestLogger_Format(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo, "textcutter")

	logger.Info("split %s into %d layers", "title", 3)

	expected := "2024-03-01T12:30:00.000 [INFO] textcutter: split title into 3 layers\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(LogLevelWarn, "")

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected debug and info to be filtered out, got: %s", output)
	}
	if !strings.Contains(output, "[WARN] warn") {
		t.Error("expected WARN in output")
	}
	if !strings.Contains(output, "[ERROR] error") {
		t.Error("expected ERROR in output")
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo, "")

	logger.WithComponent("cutter").WithFields(map[string]any{"node": "n1", "at": 4}).Info("done")

	if !strings.HasSuffix(buf.String(), "done {at=4, component=cutter, node=n1}\n") {
		t.Errorf("unexpected fields in %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	logger, buf := newTestLogger(LogLevelInfo, "")

	_ = logger.WithField("key", "value")
	logger.Info("plain")

	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("expected parent logger without fields, got %q", buf.String())
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	if logger.sink.out == nil {
		t.Error("expected default output to be set")
	}
	if logger.Level() != LogLevelDebug {
		t.Errorf("expected zero level to be debug, got %v", logger.Level())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic.
	NullLogger.Info("ignored")
	NullLogger.WithComponent("x").Error("ignored")
}
