package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error = %v", mode, err)
		}
		l.Debug("debug", "k", 1)
	}
}

func TestLogger_WithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core).With("component", "recommender")

	l.Warn("predict failed", "code", "INVALID_SOIL")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "recommender" || fields["code"] != "INVALID_SOIL" {
		t.Errorf("fields = %v", fields)
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored")
	l.With("a", 1).Error("ignored")
	l.Sync()
}
