package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  zerolog.Level
	}{
		{"debug", false, zerolog.DebugLevel},
		{"INFO", false, zerolog.InfoLevel},
		{"warn", false, zerolog.WarnLevel},
		{"warning", false, zerolog.WarnLevel},
		{"error", true, zerolog.ErrorLevel},
		{"", false, zerolog.InfoLevel},
		{"", true, zerolog.DebugLevel},
		{"verbose", false, zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name, tt.debug); got != tt.want {
			t.Errorf("ParseLevel(%q, %v) = %v, want %v", tt.name, tt.debug, got, tt.want)
		}
	}
}

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel).With("run_id", "abc")

	log.Error("Runner", errors.New("boom"), map[string]interface{}{"frame": 7})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}

	if entry["component"] != "Runner" {
		t.Errorf("component: got %v", entry["component"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error: got %v", entry["error"])
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id: got %v", entry["run_id"])
	}
	if entry["frame"] != float64(7) {
		t.Errorf("frame: got %v", entry["frame"])
	}
}

func TestZerologAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Menu", "hidden", nil)
	log.Info("Menu", "hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn level, got %q", buf.String())
	}

	log.Warning("Menu", "shown", nil)
	if buf.Len() == 0 {
		t.Fatal("expected warning to be written")
	}
}
