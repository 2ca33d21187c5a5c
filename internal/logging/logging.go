// Package logging configures the diagnostics log. The TUI owns the
// terminal, so diagnostics go to a JSON log file; unless debug is enabled
// everything is discarded.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Initialize returns the app logger. With debug off and no explicit file,
// logs are discarded.
func Initialize(debug bool, debugFile string) (*slog.Logger, error) {
	if !debug && debugFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), nil
	}

	path := debugFile
	if path == "" {
		dir, err := logDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, uuid.NewString()+".log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("debug logging initialized", "log_file", path)
	return logger, nil
}

func logDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "inkwell", "logs"), nil
}
