package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewCLI_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"", zapcore.WarnLevel, zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
		{"loud", zapcore.WarnLevel, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		core := NewCLI(tt.level).Core()
		if !core.Enabled(tt.enabled) {
			t.Errorf("level %q: expected %s enabled", tt.level, tt.enabled)
		}
		if core.Enabled(tt.muted) {
			t.Errorf("level %q: expected %s muted", tt.level, tt.muted)
		}
	}
}

func TestNew_FallsBackToInfo(t *testing.T) {
	t.Parallel()

	log, err := New(Config{Level: "verbose", Encoding: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected info level for an unknown level name")
	}
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithRequestID(ContextWithRequestID(context.Background(), "req-7"), base).Info("tagged")
	WithRequestID(context.Background(), base).Info("plain")

	entries := logs.All()
	if got := entries[0].ContextMap()["request_id"]; got != "req-7" {
		t.Errorf("expected request id on first entry, got %v", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Error("expected no request id without one in the context")
	}
}
