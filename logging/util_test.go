package logging

import (
	"log/slog"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name     string
		input    *string
		expected slog.Level
	}{
		{name: "nil defaults to info", input: nil, expected: slog.LevelInfo},
		{name: "debug", input: str("DEBUG"), expected: slog.LevelDebug},
		{name: "lowercase warn", input: str("warn"), expected: slog.LevelWarn},
		{name: "error", input: str("ERROR"), expected: slog.LevelError},
		{name: "garbage defaults to info", input: str("verbose"), expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromString(tt.input); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
