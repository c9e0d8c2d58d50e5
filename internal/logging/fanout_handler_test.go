package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)

	if h := newFanoutHandler(nil, inner, nil); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRoutesByLevel(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	h := newFanoutHandler(
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected fanout to be enabled for info")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout to be disabled for debug")
	}

	logger := slog.New(h).With("run_id", "r1")
	logger.Info("info message")
	logger.Warn("warn message")

	if !strings.Contains(infoBuf.String(), "info message") || !strings.Contains(infoBuf.String(), "warn message") {
		t.Fatalf("info handler missing records: %q", infoBuf.String())
	}
	if strings.Contains(warnBuf.String(), "info message") {
		t.Fatalf("warn handler received info record: %q", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), "run_id=r1") {
		t.Fatalf("attrs not propagated: %q", warnBuf.String())
	}
}

func TestFanoutHandlerWithGroup(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanoutHandler(slog.NewTextHandler(&a, nil), slog.NewTextHandler(&b, nil))

	slog.New(h).WithGroup("ingest").Info("grouped", "files", 3)

	for _, buf := range []*bytes.Buffer{&a, &b} {
		if !strings.Contains(buf.String(), "ingest.files=3") {
			t.Fatalf("expected grouped attr, got %q", buf.String())
		}
	}
}
