package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf, Name: "test"}), buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "[WRN] {test} shown") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogger_JSONFields(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelInfo)

	logger.Named("interleave").WithField("seed", 42).Info("stream opened", "sampling", 3)

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if data["logger"] != "test.interleave" {
		t.Errorf("logger = %v", data["logger"])
	}
	if data["seed"] != float64(42) || data["sampling"] != float64(3) {
		t.Errorf("fields missing: %v", data)
	}
	if data["message"] != "stream opened" {
		t.Errorf("message = %v", data["message"])
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(FormatText, LevelInfo)
	_ = parent.WithField("source", "dates")

	parent.Info("plain")
	if strings.Contains(buf.String(), "source=") {
		t.Errorf("parent logger picked up child field: %q", buf.String())
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelTrace)

	logger.LogError(tterr.New(tterr.CodeNotFound, "cache miss"))
	logger.LogError(tterr.New(tterr.CodeSamplingPlan, "lex missing").WithDetail("dataset", "lex"))
	logger.LogError(errors.New("plain"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[INF]") {
		t.Errorf("low severity should log at info: %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ERR]") || !strings.Contains(lines[1], "error_dataset=lex") {
		t.Errorf("critical error line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ERR] {test} plain") {
		t.Errorf("plain error line: %q", lines[2])
	}
}

func TestTimer_StopLogsOnce(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelInfo)

	timer := logger.StartTimer("interleave")
	timer.WithField("written", 10).Stop()
	timer.Stop()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &data); err != nil {
		t.Fatal(err)
	}
	if data["message"] != "interleave completed" || data["written"] != float64(10) {
		t.Errorf("unexpected entry: %v", data)
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taletekst.log")
	console := &bytes.Buffer{}

	cfg := DefaultLoggerConfig("taletekst")
	cfg.File = path
	cfg.Console = console
	logger, closer := NewLogger(cfg)

	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(console.String(), "hello") {
		t.Errorf("message missing: file=%q console=%q", data, console.String())
	}
	if !strings.Contains(console.String(), "run=") {
		t.Errorf("correlation id missing: %q", console.String())
	}
}
