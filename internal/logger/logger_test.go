package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.level); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
		}
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return record
}

func TestJSONOutputKeys(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("hello")

	record := decodeLine(t, &buf)
	if record["message"] != "hello" {
		t.Errorf("message = %v", record["message"])
	}
	if record["level"] != "info" {
		t.Errorf("level = %v", record["level"])
	}
	if _, ok := record["timestamp"]; !ok {
		t.Error("expected timestamp key")
	}
}

func TestWarnLevelRendersAsWarning(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Warn("careful")

	record := decodeLine(t, &buf)
	if record["level"] != "warning" {
		t.Errorf("level = %v, want warning", record["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	log.Error("emitted")
	if buf.Len() == 0 {
		t.Error("expected error output")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("retrieval").
		WithRequestID("req-1").
		WithField("stage", "ranking").
		Info("stage complete")

	record := decodeLine(t, &buf)
	if record["module"] != "retrieval" {
		t.Errorf("module = %v", record["module"])
	}
	if record["request_id"] != "req-1" {
		t.Errorf("request_id = %v", record["request_id"])
	}
	if record["stage"] != "ranking" {
		t.Errorf("stage = %v", record["stage"])
	}
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Infof("loaded %d professors", 42)

	record := decodeLine(t, &buf)
	if record["message"] != "loaded 42 professors" {
		t.Errorf("message = %v", record["message"])
	}
}

func TestNewWithShippingWithoutToken(t *testing.T) {
	log := NewWithShipping("info", "")
	if log == nil {
		t.Fatal("NewWithShipping returned nil")
	}
}
