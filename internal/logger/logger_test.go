package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithoutFileWritesToStdoutOnly(t *testing.T) {
	l, err := New("", 0, 0, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	if l.GetFilePath() != "" {
		t.Errorf("GetFilePath() = %q, want empty", l.GetFilePath())
	}
}

func TestSetDebugTogglesDebugMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(path, 10, 3, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	if l.IsDebug() {
		t.Fatal("IsDebug() = true, want false")
	}

	l.SetDebug(true)
	if !l.IsDebug() {
		t.Fatal("IsDebug() = false after SetDebug(true)")
	}
}

func TestJSONLogsEmitsStructuredLines(t *testing.T) {
	var buf bytes.Buffer

	l := &Logger{stdLogger: nil}
	l.structured = newStructuredLogger(&buf, false)
	l.jsonLogs = true

	l.Info("fetched %d keychains", 2)

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a structured log line, got none")
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		t.Fatalf("structured log line is not valid JSON: %v (%q)", err, line)
	}
	if fields["component"] != "dji-log-parser" {
		t.Errorf("component field = %v, want dji-log-parser", fields["component"])
	}
	if fields["msg"] != "fetched 2 keychains" {
		t.Errorf("msg field = %v, want %q", fields["msg"], "fetched 2 keychains")
	}
	if fields["level"] != "info" {
		t.Errorf("level field = %v, want info", fields["level"])
	}
}

func TestSetJSONLogsToggle(t *testing.T) {
	l, err := New("", 0, 0, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	if l.IsJSONLogs() {
		t.Fatal("IsJSONLogs() = true, want false by default")
	}
	l.SetJSONLogs(true)
	if !l.IsJSONLogs() {
		t.Fatal("IsJSONLogs() = false after SetJSONLogs(true)")
	}
}
