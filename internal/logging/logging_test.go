package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packshark.log")

	logger, err := New(Options{Level: "debug", OutputPath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("fetch issued")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"fetch issued"`) {
		t.Fatalf("expected debug entry in log file, got %s", data)
	}
	if !strings.Contains(string(data), `"timestamp"`) {
		t.Fatalf("expected timestamp key in log file, got %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
