package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	log := slog.New(h)

	log.Info("fan out")

	if !strings.Contains(a.String(), "fan out") {
		t.Error("first handler missed the record")
	}
	if !strings.Contains(b.String(), "fan out") {
		t.Error("second handler missed the record")
	}
}

func TestMultiHandlerSkipsNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewJSONHandler(&buf, nil), nil)
	log := slog.New(h)

	log.Info("alive")
	if !strings.Contains(buf.String(), "alive") {
		t.Error("expected the non-nil handler to receive the record")
	}
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Enabled when any handler accepts the level")
	}

	log := slog.New(h)
	log.Debug("quiet")

	if !strings.Contains(debugBuf.String(), "quiet") {
		t.Error("debug handler should receive debug records")
	}
	if errorBuf.Len() != 0 {
		t.Errorf("error handler should skip debug records, got %q", errorBuf.String())
	}
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("service", "counselor")}))

	log.Info("tagged")
	if !strings.Contains(buf.String(), `"service":"counselor"`) {
		t.Errorf("expected attribute in output, got %q", buf.String())
	}
}
