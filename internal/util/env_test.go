package util

import (
	"log/slog"
	"testing"
	"time"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TODO_TEST_VALUE", "")
	if got := EnvOrDefault("TODO_TEST_VALUE", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	t.Setenv("TODO_TEST_VALUE", "set")
	if got := EnvOrDefault("TODO_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("expected set, got %q", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TODO_TEST_TIMEOUT", "")
	if d, err := EnvDuration("TODO_TEST_TIMEOUT", time.Second); err != nil || d != time.Second {
		t.Errorf("expected fallback, got %v %v", d, err)
	}
	t.Setenv("TODO_TEST_TIMEOUT", "250ms")
	if d, err := EnvDuration("TODO_TEST_TIMEOUT", time.Second); err != nil || d != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v %v", d, err)
	}
	t.Setenv("TODO_TEST_TIMEOUT", "soon")
	if _, err := EnvDuration("TODO_TEST_TIMEOUT", time.Second); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}
