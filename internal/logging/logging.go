// Package logging builds the application's zap logger. Output goes to a
// file because stdout and stderr belong to the terminal UI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how verbosely to log.
type Config struct {
	// File is the log file path. Empty disables logging.
	File string

	// Level is a zap level name ("debug", "info", "warn", "error").
	Level string

	// Mode is "prod" for JSON output or "dev" for console output.
	Mode string
}

// ConfigFromEnv reads GRANDMASTER_LOG_FILE, GRANDMASTER_LOG_LEVEL and
// GRANDMASTER_LOG_MODE. The log file defaults to grandmaster.log next to
// dbPath.
func ConfigFromEnv(dbPath string) Config {
	cfg := Config{Level: "info", Mode: "prod"}
	if dbPath != "" {
		cfg.File = filepath.Join(filepath.Dir(dbPath), "grandmaster.log")
	}
	if f, ok := os.LookupEnv("GRANDMASTER_LOG_FILE"); ok {
		cfg.File = f
	}
	if l := os.Getenv("GRANDMASTER_LOG_LEVEL"); l != "" {
		cfg.Level = l
	}
	if m := os.Getenv("GRANDMASTER_LOG_MODE"); m != "" {
		cfg.Mode = m
	}
	return cfg
}

// New builds a logger from cfg. An empty File yields a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	var zc zap.Config
	switch strings.ToLower(cfg.Mode) {
	case "dev", "development":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
