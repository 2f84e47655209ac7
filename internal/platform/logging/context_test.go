package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTraceIDFromContext(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil trace ID, got %v", got)
	}
	ctx := contextWithTraceID(context.Background(), "trace-abc")
	got := TraceIDFromContext(ctx)
	if got == nil || *got != "trace-abc" {
		t.Fatalf("expected trace-abc, got %v", got)
	}
	if contextWithTraceID(ctx, "") != ctx {
		t.Fatal("expected empty trace ID to leave context untouched")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	ctx := WithLogger(context.Background(), logger)

	if LoggerFromContext(ctx) != logger {
		t.Fatal("expected stored logger to be returned")
	}
	LogInfo(ctx, "hello", zap.String("path", "/api/hello"))
	LogWarn(ctx, "careful")

	entries := recorded.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "hello" || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Message != "careful" || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	ctx := context.Background()
	if WithLogger(ctx, nil) != ctx {
		t.Fatal("expected nil logger to leave context untouched")
	}
}

func TestLoggerFromContextFallsBackToNop(t *testing.T) {
	var nilCtx context.Context //nolint:staticcheck // nil context handling
	if LoggerFromContext(nilCtx) == nil {
		t.Fatal("expected non-nil logger for nil context")
	}
	ctx := context.WithValue(context.Background(), ctxLoggerKey{}, (*zap.Logger)(nil))
	if LoggerFromContext(ctx) == nil {
		t.Fatal("expected non-nil logger when context holds a nil logger")
	}
	if SugarFromContext(context.Background()) == nil {
		t.Fatal("expected non-nil sugared logger")
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogError(ctx, "failed", errors.New("boom"), zap.String("foo", "bar"))
	LogError(ctx, "failed quietly", nil)

	entries := recorded.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["foo"] != "bar" {
		t.Fatalf("expected foo field, got %+v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", fields)
	}
	if _, ok := entries[1].ContextMap()["error"]; ok {
		t.Fatal("did not expect error field when err is nil")
	}
}
