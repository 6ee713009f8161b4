package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func parseRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid log record %q: %v", buf.String(), err)
	}
	return record
}

func TestLoggerWritesTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "yieldsplit", func(ctx context.Context) string {
		return "abc123"
	})

	log.Info(context.Background(), "quote issued", "market", "haSUI")

	record := parseRecord(t, &buf)
	if record["trace_id"] != "abc123" {
		t.Errorf("expected trace_id abc123, got %v", record["trace_id"])
	}
	if record["service"] != "yieldsplit" {
		t.Errorf("expected service yieldsplit, got %v", record["service"])
	}
	if record["msg"] != "quote issued" {
		t.Errorf("expected msg, got %v", record["msg"])
	}
	if record["market"] != "haSUI" {
		t.Errorf("expected market attribute, got %v", record["market"])
	}
}

func TestLoggerNilTraceFnOmitsTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "yieldsplit", nil)

	log.Info(context.Background(), "quote issued")

	record := parseRecord(t, &buf)
	if _, ok := record["trace_id"]; ok {
		t.Errorf("expected no trace_id without a hook, got %v", record["trace_id"])
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "yieldsplit", nil)

	log.Info(context.Background(), "too quiet")
	if buf.Len() != 0 {
		t.Errorf("expected info below warn to be dropped, got %q", buf.String())
	}

	log.Warn(context.Background(), "loud enough")
	if buf.Len() == 0 {
		t.Error("expected warn record to be written")
	}
}
