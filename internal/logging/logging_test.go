package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	logger := New("aggregator")
	logger.Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=aggregator") {
		t.Errorf("expected component=aggregator in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	logger := New("catalog")
	logger.Info("json check")

	output := buf.String()
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Errorf("expected JSON level field, got: %s", output)
	}
	if !strings.Contains(output, `"component":"catalog"`) {
		t.Errorf("expected JSON component field, got: %s", output)
	}
}

func TestInit_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	logger := New("watch")
	logger.Debug("suppressed")
	logger.Warn("visible")

	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Error("debug message should be suppressed at warn level")
	}
	if !strings.Contains(output, "visible") {
		t.Error("warn message should appear at warn level")
	}
}
