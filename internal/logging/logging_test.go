package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "grandmaster.log")
	logger, err := New(Config{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("lesson loaded", zap.String("lesson", "lesson-1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "lesson loaded" || entry["lesson"] != "lesson-1" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(Config{File: path, Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log contents = %q", data)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(Config{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	l, err := New(Config{})
	if err != nil || l == nil {
		t.Fatalf("empty file should give a no-op logger, got %v, %v", l, err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GRANDMASTER_LOG_LEVEL", "debug")
	t.Setenv("GRANDMASTER_LOG_MODE", "")
	t.Setenv("GRANDMASTER_LOG_FILE", "unset")
	os.Unsetenv("GRANDMASTER_LOG_FILE")

	cfg := ConfigFromEnv("/data/grandmaster/grandmaster.db")
	if cfg.File != "/data/grandmaster/grandmaster.log" || cfg.Level != "debug" || cfg.Mode != "prod" {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv("GRANDMASTER_LOG_FILE", "")
	if cfg := ConfigFromEnv("/data/grandmaster.db"); cfg.File != "" {
		t.Errorf("explicit empty file should disable logging, got %q", cfg.File)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected a logger")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("expected the same logger back")
	}
}
