package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/keybind/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"Warning", LogLevelWarn},
		{"ERROR", LogLevelError},
		{"", LogLevelInfo},
		{"loud", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerLine(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "keybind"})

	log.Info("dropped")
	log.WithFields(map[string]any{"zeta": 1, "action": "zoom in", "mid": true}).
		Warn("binding %s claimed twice", "<Control>plus")

	got := strings.TrimSpace(buf.String())
	if strings.Contains(got, "dropped") {
		t.Errorf("info line written at warn level: %q", got)
	}
	want := `[WARN] keybind: binding <Control>plus claimed twice {action=zoom in, mid=true, zeta=1}`
	if !strings.HasSuffix(got, want) {
		t.Errorf("line = %q, want suffix %q", got, want)
	}
}

func TestLoggerDerivedSharesLock(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "keybind"})
	loggers := []*Logger{root, root.WithComponent("keymap"), root.WithComponent("script")}

	var wg sync.WaitGroup
	for _, l := range loggers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				l.Debug("tick")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 150 {
		t.Fatalf("got %d lines, want 150", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "[DEBUG] keybind: tick") {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})

	log.Info("hidden")
	log.SetLevel(LogLevelInfo)
	log.Info("shown")

	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "shown") {
		t.Errorf("output = %q", got)
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.WithComponent("keymap").Error("ignored %d", 1)
}

func TestOpenLogger(t *testing.T) {
	var fallback bytes.Buffer
	log, closer, err := OpenLogger(config.LoggingConfig{Level: "debug"}, &fallback)
	if err != nil {
		t.Fatalf("OpenLogger() error = %v", err)
	}
	log.Debug("to fallback")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !strings.Contains(fallback.String(), "to fallback") {
		t.Errorf("fallback output = %q", fallback.String())
	}

	path := filepath.Join(t.TempDir(), "logs", "keybind.log")
	log, closer, err = OpenLogger(config.LoggingConfig{Level: "warn", File: path}, &fallback)
	if err != nil {
		t.Fatalf("OpenLogger(file) error = %v", err)
	}
	log.Info("filtered")
	log.Warn("kept")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "filtered") || !strings.Contains(string(data), "kept") {
		t.Errorf("log file = %q", data)
	}
}

func TestOpenLoggerBadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := OpenLogger(config.LoggingConfig{File: filepath.Join(blocker, "keybind.log")}, nil)
	if err == nil {
		t.Fatal("OpenLogger() error = nil, want directory error")
	}
}
