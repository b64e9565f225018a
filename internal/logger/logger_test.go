package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	Init(true, logFile)
	Sugar.Debugw("debug message", "key", 1)
	Sugar.Infow("info message")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	text := string(content)
	for _, want := range []string{"DEBUG", "debug message", "INFO", "info message"} {
		if !strings.Contains(text, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestInfoLevelFiltersDebug(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	Init(false, logFile)
	Sugar.Debug("hidden")
	Sugar.Info("shown")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	text := string(content)
	if strings.Contains(text, "hidden") {
		t.Error("debug entry should be filtered at info level")
	}
	if !strings.Contains(text, "shown") {
		t.Error("info entry missing from log output")
	}
}

func TestInitWithoutFile(t *testing.T) {
	Init(false, "")
	if Log == nil || Sugar == nil {
		t.Fatal("Init should set the global loggers")
	}
	Sync()
}
