package log

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvSource, "true")
	t.Setenv(EnvFile, "")

	opts := FromEnv()
	if opts.Level != "debug" {
		t.Errorf("Level = %q, want debug", opts.Level)
	}
	if opts.Format != "json" {
		t.Errorf("Format = %q, want json", opts.Format)
	}
	if !opts.AddSource {
		t.Error("AddSource = false, want true")
	}
	if opts.File != "" {
		t.Errorf("File = %q, want empty", opts.File)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvFormat, "")

	opts := FromEnv()
	if opts.Level != "info" {
		t.Errorf("Level = %q, want info", opts.Level)
	}
	if opts.Format != "text" {
		t.Errorf("Format = %q, want text", opts.Format)
	}
}

func TestMultiHandlerEnabled(t *testing.T) {
	quiet := slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError})
	chatty := slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	m := multiHandler{quiet, chatty}
	if !m.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = false with one debug handler, want true")
	}
	m = multiHandler{quiet}
	if m.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true with only an error handler, want false")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
