package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := LevelFromString(tt.in); got != tt.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(&Config{
		LogDir:    filepath.Join(dir, "logs"),
		FileLevel: zapcore.InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Named("store").Info("config replaced", Uint64("version", 2))
	logger.Debug("dropped below file level")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "logs", LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"msg":"config replaced"`) {
		t.Errorf("Expected message in log file, got: %s", content)
	}
	if !strings.Contains(content, `"logger":"store"`) {
		t.Errorf("Expected logger name in log file, got: %s", content)
	}
	if strings.Contains(content, "dropped below file level") {
		t.Errorf("Debug entry should be filtered at info level")
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, zapcore.WarnLevel)

	logger.Info("quiet")
	logger.With(String("path", "/")).Warn("loud")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("Info should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, `"path"`) {
		t.Errorf("Expected warn entry with field, got: %s", out)
	}
}
