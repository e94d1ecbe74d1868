package pkg

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	original := LogLevel()
	defer SetLogLevel(original)

	tests := []struct {
		name  string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLogLevel(tt.level)
			if got := LogLevel(); got != tt.level {
				t.Errorf("LogLevel() = %v, want %v", got, tt.level)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Warn("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("log output missing message: %s", buf.String())
	}
}

func TestLogHelpersTagComponent(t *testing.T) {
	original := Logger()
	defer SetLogger(original)
	level := LogLevel()
	defer SetLogLevel(level)

	var buf bytes.Buffer
	SetLogLevel(slog.LevelDebug)
	SetLogger(NewLogger(&buf))

	LogDebug(ComponentConsole, "hello", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "component=console") {
		t.Errorf("log output missing component tag: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("log output missing attribute: %s", out)
	}
}

func TestLogHelpersHonorLevel(t *testing.T) {
	original := Logger()
	defer SetLogger(original)
	level := LogLevel()
	defer SetLogLevel(level)

	var buf bytes.Buffer
	SetLogLevel(slog.LevelWarn)
	SetLogger(NewLogger(&buf))

	LogDebug(ComponentBlock, "suppressed")
	LogInfo(ComponentBlock, "also suppressed")
	LogWarn(ComponentBlock, "emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("low-level records emitted at warn: %s", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: logLevel})))

	LogError(ComponentVDisk, "read failed", "partition", 8)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "read failed" {
		t.Errorf("msg = %v, want %q", record["msg"], "read failed")
	}
	if record["component"] != "vdisk" {
		t.Errorf("component = %v, want %q", record["component"], "vdisk")
	}
}

func TestSetLogFormat(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	SetLogFormat(LogFormatJSON)
	if Logger() == original {
		t.Error("SetLogFormat(JSON) did not replace the logger")
	}

	SetLogFormat(LogFormatText)
	if Logger() == original {
		t.Error("SetLogFormat(Text) did not replace the logger")
	}
}
