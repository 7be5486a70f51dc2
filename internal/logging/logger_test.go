package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("event dispatched", "event", "file_content", "matched", 2)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v", err)
	}
	if entry["msg"] != "event dispatched" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["event"] != "file_content" {
		t.Errorf("unexpected event attr: %v", entry["event"])
	}
	if entry["matched"] != float64(2) {
		t.Errorf("unexpected matched attr: %v", entry["matched"])
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("dropped")
	logger.Info("also dropped")
	logger.Warn("kept")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, logFileName))
	out := string(data)

	if strings.Contains(out, "dropped") {
		t.Error("entries below WARN should have been filtered")
	}
	if !strings.Contains(out, "kept") {
		t.Error("WARN entry should have been written")
	}
}

func TestLogger_ChildLoggersCarryAttributes(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.WithComponent("outbox").WithTask("retry-driver")
	child.Debug("instruction re-queued", "retry", 1)

	// The parent must not inherit the child's attributes.
	logger.Debug("plain entry")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, logFileName))
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}

	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}

	if first["component"] != "outbox" || first["task"] != "retry-driver" {
		t.Errorf("child entry missing persistent attrs: %v", first)
	}
	if _, ok := second["component"]; ok {
		t.Error("parent logger leaked child attributes")
	}
}

func TestLogger_WithIgnoresMalformedPairs(t *testing.T) {
	logger := NopLogger()

	// Non-string key and a dangling value must not panic.
	child := logger.With(42, "value", "ok", "fine", "dangling")
	child.Info("still works")
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on NopLogger should be a no-op, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
