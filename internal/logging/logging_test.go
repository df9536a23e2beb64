package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// captureLogOutput reinitializes the logger to write to a buffer for the
// duration of f.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	f()
	InitLogger(LevelInfo, FormatText)
	return buf.String()
}

func decode(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	return entry
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		logFunc func()
		wantLog bool
	}{
		{"debug at debug", LevelDebug, func() { Debug("msg") }, true},
		{"debug at info", LevelInfo, func() { Debug("msg") }, false},
		{"info at info", LevelInfo, func() { Info("msg") }, true},
		{"info at warn", LevelWarn, func() { Info("msg") }, false},
		{"warn at warn", LevelWarn, func() { Warn("msg") }, true},
		{"warn at error", LevelError, func() { Warn("msg") }, false},
		{"conversion error at error", LevelError, func() { ConversionError(context.Background(), "a.cc", "parse", errors.New("x")) }, true},
		{"debug context at info", LevelInfo, func() { DebugContext(context.Background(), "msg") }, false},
		{"warn context at warn", LevelWarn, func() { WarnContext(context.Background(), "msg") }, true},
		{"unknown level defaults to info", Level(99), func() { Info("msg") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLogOutput(tt.level, FormatJSON, tt.logFunc)
			if got := out != ""; got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, out)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	out := captureLogOutput(LevelInfo, FormatJSON, func() { Info("hello", "key", "value") })
	entry := decode(t, strings.TrimSpace(out))
	if entry["msg"] != "hello" || entry["key"] != "value" {
		t.Errorf("entry = %v", entry)
	}
	if ts, _ := entry["time"].(string); !strings.Contains(ts, "T") || strings.Contains(ts, ".") {
		t.Errorf("time = %q, want RFC3339 without fractions", ts)
	}

	out = captureLogOutput(LevelInfo, FormatText, func() { Info("hello", "key", "value") })
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "key=value") {
		t.Errorf("text output = %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
	if f, err := ParseFormat("JSON"); f != FormatJSON || err != nil {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if GetRunID(ctx) != "" {
		t.Error("empty context has a run id")
	}
	id := NewRunID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("NewRunID() = %q is not a UUID", id)
	}
	ctx = WithRunID(ctx, id)
	if GetRunID(ctx) != id {
		t.Errorf("GetRunID() = %q, want %q", GetRunID(ctx), id)
	}

	out := captureLogOutput(LevelDebug, FormatJSON, func() { InfoContext(ctx, "with run") })
	if entry := decode(t, strings.TrimSpace(out)); entry["run_id"] != id {
		t.Errorf("run_id = %v, want %s", entry["run_id"], id)
	}
}

func TestDomainHelpers(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	tests := []struct {
		name   string
		log    func()
		msg    string
		level  string
		fields map[string]any
	}{
		{
			name:   "file parsed",
			log:    func() { FileParsed(ctx, "in.ccc", "ccc", "abc", 3) },
			msg:    "file_parsed",
			level:  "INFO",
			fields: map[string]any{"path": "in.ccc", "blake3": "abc", "corrections": float64(3)},
		},
		{
			name:   "file written",
			log:    func() { FileWritten(ctx, "out/a.cc", "cc", 120, true) },
			msg:    "file_written",
			level:  "INFO",
			fields: map[string]any{"path": "out/a.cc", "bytes": float64(120), "dry_run": true},
		},
		{
			name:   "sanity finding",
			log:    func() { SanityFinding(ctx, "A001", "slope.r", "4", "unusual", "is outside (0.1, 3)") },
			msg:    "sanity_finding",
			level:  "WARN",
			fields: map[string]any{"id": "A001", "field": "slope.r", "severity": "unusual"},
		},
		{
			name:   "conversion error",
			log:    func() { ConversionError(ctx, "bad.cc", "parse", errors.New("boom")) },
			msg:    "conversion_error",
			level:  "ERROR",
			fields: map[string]any{"operation": "parse", "error": "boom"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := decode(t, strings.TrimSpace(captureLogOutput(LevelDebug, FormatJSON, tt.log)))
			if entry["msg"] != tt.msg || entry["level"] != tt.level || entry["run_id"] != "run-1" {
				t.Errorf("entry = %v", entry)
			}
			for k, want := range tt.fields {
				if entry[k] != want {
					t.Errorf("%s = %v, want %v", k, entry[k], want)
				}
			}
		})
	}
}
