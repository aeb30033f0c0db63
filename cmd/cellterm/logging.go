package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// maxLogSize triggers rotation of an existing log at startup
const maxLogSize = 10 * 1024 * 1024

// setupLogging opens path for a text log at level. An empty path discards
// everything: the demos own stdout and stderr.
func setupLogging(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "create log directory")
		}
	}
	if err := rotateLog(path); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	logger.Info("log opened", "pid", os.Getpid())
	return logger, f, nil
}

// rotateLog renames path with a timestamp suffix once it exceeds maxLogSize
func rotateLog(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	return errors.Wrap(os.Rename(path, rotated), "rotate log")
}
