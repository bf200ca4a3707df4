package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", Logger.GetLevel())
	}

	Warn("Test warning message", "key", "value")
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These must not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestKeyValuesAreWritten(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	t.Cleanup(func() { Logger = nil })

	Warn("collection reset", "key", "worthit_entries")

	out := buf.String()
	if !strings.Contains(out, "collection reset") || !strings.Contains(out, "worthit_entries") {
		t.Errorf("unexpected log output: %q", out)
	}
}
