package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/daylight/slideshow"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	}

	for value, want := range cases {
		if got := logLevel(value); got != want {
			t.Errorf("logLevel(%q) = %s, want %s", value, got, want)
		}
	}
}

func TestRunWithoutImages(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(640, 480, 1, []string{dir})
	if !errors.Is(err, slideshow.ErrNothingToShow) {
		t.Errorf("run() error = %v, want ErrNothingToShow", err)
	}
}
