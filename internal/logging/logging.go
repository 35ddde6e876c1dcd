// Package logging builds the zap logger the app writes diagnostics to.
// The TUI owns the terminal, so diagnostics go to a JSON file under the
// user cache dir; with debug disabled the logger is a no-op and costs
// nothing on hot paths.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Open builds the application logger. With debug disabled it returns a
// no-op logger and an empty path. Callers should Sync on shutdown.
func Open(debug bool) (*zap.Logger, string, error) {
	if !debug {
		return zap.NewNop(), "", nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return openAt(filepath.Join(base, "tada"))
}

func openAt(dir string) (*zap.Logger, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, "tada.log")

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, "", fmt.Errorf("build logger: %w", err)
	}
	return logger, path, nil
}
