package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(level string) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newConsoleHandler(&buf, levelVar)), &buf
}

func TestConsoleHandlerFormat(t *testing.T) {
	logger, buf := newBufferLogger("info")
	logger = WithComponent(logger, "ingest")
	logger.Info("item stored", Int64(FieldItemID, 42), String("summary", "two words"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO ingest: item stored") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "item_id=42") {
		t.Fatalf("expected item_id attr, got %q", line)
	}
	if !strings.Contains(line, `summary="two words"`) {
		t.Fatalf("expected quoted multi-word value, got %q", line)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	logger, buf := newBufferLogger("warn")
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	logger, buf := newBufferLogger("info")
	logger.With(slog.Group("store", slog.String("path", "/tmp/db"))).Info("opened")

	if !strings.Contains(buf.String(), "store.path=/tmp/db") {
		t.Fatalf("expected flattened group key, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not enable error level")
	}
}
