package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type staticVerbose bool

func (s staticVerbose) IsVerbose() bool { return bool(s) }

func decodeLines(t *testing.T, raw string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_VerboseGating(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantLines int
	}{
		{name: "quiet drops debug and info", verbose: false, wantLines: 2},
		{name: "verbose keeps everything", verbose: true, wantLines: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWriter("dispatcher", &buf, staticVerbose(tt.verbose))

			log.Debug("debug %d", 1)
			log.Info("info %d", 2)
			log.Warn("warn %d", 3)
			log.Error("error %d", 4)

			lines := decodeLines(t, buf.String())
			if len(lines) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d: %s", tt.wantLines, len(lines), buf.String())
			}
			last := lines[len(lines)-1]
			if last["level"] != "ERROR" || last["message"] != "error 4" || last["component"] != "dispatcher" {
				t.Errorf("unexpected entry %v", last)
			}
			if _, ok := last["timestamp"]; !ok {
				t.Error("expected timestamp key")
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter("ui", &buf, staticVerbose(true)).WithComponent("console")

	log.InfoWithFields("dispatch finished", []Field{
		F("panel", "SECURITY"),
		Count(2),
		Duration(1500 * time.Millisecond),
		Error(errors.New("boom")),
	})

	lines := decodeLines(t, buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	entry := lines[0]
	if entry["component"] != "console" {
		t.Errorf("expected component console, got %v", entry["component"])
	}
	if entry["panel"] != "SECURITY" || entry["count"] != float64(2) || entry["duration"] != "1.5s" || entry["error"] != "boom" {
		t.Errorf("unexpected fields %v", entry)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rhea.log")

	log, err := NewFile("cli", path, nil)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	log.Warn("credential missing")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	lines := decodeLines(t, string(data))
	if len(lines) != 1 || lines[0]["message"] != "credential missing" {
		t.Errorf("unexpected file contents %s", data)
	}
}

func TestNopAndCallback(t *testing.T) {
	Nop().Error("dropped")

	called := false
	log := NewWithCallback("test", func() bool { called = true; return false })
	log.Debug("hidden")
	if !called {
		t.Error("expected verbose callback to be consulted")
	}
}
