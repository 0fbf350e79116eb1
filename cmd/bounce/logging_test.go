package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/bounce/config"
)

func testLogging(t *testing.T) config.LoggingConfig {
	t.Helper()
	return config.LoggingConfig{
		Level:  "debug",
		Format: "console",
		File:   filepath.Join(t.TempDir(), "logs", "bounce.log"),
	}
}

func TestNewLogger_DisabledByDefault(t *testing.T) {
	cfg := testLogging(t)
	log, err := newLogger(cfg, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	log.Info("discarded")

	if _, err := os.Stat(filepath.Dir(cfg.File)); !os.IsNotExist(err) {
		t.Error("Expected no log directory without debug")
	}
}

func TestNewLogger_EnabledWithDebug(t *testing.T) {
	cfg := testLogging(t)
	log, err := newLogger(cfg, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	log.Info("Test log message")
	_ = log.Sync()

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test log message") {
		t.Errorf("Expected log file to contain message, got %q", data)
	}
}

func TestNewLogger_JSONAndLevel(t *testing.T) {
	cfg := testLogging(t)
	cfg.Format = "json"
	cfg.Level = "warn"
	log, err := newLogger(cfg, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	log.Info("below level")
	log.Warn("at level")
	_ = log.Sync()

	data, _ := os.ReadFile(cfg.File)
	if strings.Contains(string(data), "below level") {
		t.Error("Expected info filtered at warn level")
	}
	if !strings.Contains(string(data), `"msg":"at level"`) {
		t.Errorf("Expected JSON warn entry, got %q", data)
	}
}

func TestNewLogger_Rotation(t *testing.T) {
	cfg := testLogging(t)
	dir := filepath.Dir(cfg.File)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	if err := os.WriteFile(cfg.File, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write log file: %v", err)
	}

	log, err := newLogger(cfg, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	log.Info("fresh")
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != filepath.Base(cfg.File) && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(cfg.File)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}
