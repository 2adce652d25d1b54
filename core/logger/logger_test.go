package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"log/slog"
)

func TestLogEventCarriesEventAndRID(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(buf, nil)).With("component", "service.test")

	ctx := WithRID(Background(), "42:7:9")
	LogEvent(ctx, log, slog.LevelInfo, "test.event",
		slog.String("status", "ok"),
	)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if rec["event"] != "test.event" {
		t.Fatalf("event = %v, want test.event", rec["event"])
	}
	if rec["rid"] != "42:7:9" {
		t.Fatalf("rid = %v, want 42:7:9", rec["rid"])
	}
	if rec["component"] != "service.test" {
		t.Fatalf("component = %v, want service.test", rec["component"])
	}
}

func TestFromContextPrefersStoredLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, nil))

	ctx := WithLogger(Background(), log)
	got := FromContext(ctx)
	if got != log {
		t.Fatal("expected logger stored in context")
	}

	LogEvent(ctx, nil, slog.LevelWarn, "ctx.logger")
	if !strings.Contains(buf.String(), "ctx.logger") {
		t.Fatalf("expected record through context logger, got %q", buf.String())
	}
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(Background(), 100, 200, 300)
	if got := UpdateIDFrom(ctx); got != 100 {
		t.Fatalf("update id = %d, want 100", got)
	}
	if got := UserIDFrom(ctx); got != 200 {
		t.Fatalf("user id = %d, want 200", got)
	}
	if got := ChatIDFrom(ctx); got != 300 {
		t.Fatalf("chat id = %d, want 300", got)
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "abc\x00def\tghi\nx"
	if got := Sanitize(in); got != "abcdef\tghi\nx" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := SanitizeLimit("привет мир", 6); got != "привет" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("short", 0); got != "" {
		t.Fatalf("SanitizeLimit zero max = %q", got)
	}
}

func TestBuildRID(t *testing.T) {
	if got := BuildRID(1, 2, 3); got != "1:2:3" {
		t.Fatalf("BuildRID = %q", got)
	}
}
