package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	for _, level := range []string{"", "invalid"} {
		if got := NewLogger(&buf, level).GetLevel(); got != zerolog.InfoLevel {
			t.Fatalf("level %q: expected info fallback, got %s", level, got)
		}
	}
}

func TestNewLoggerIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")
	logger.Info().Msg("Buy placed: b1")
	out := buf.String()
	if strings.HasPrefix(out, "{") || !strings.Contains(out, "Buy placed: b1") {
		t.Fatalf("expected console output, got %q", out)
	}
}
