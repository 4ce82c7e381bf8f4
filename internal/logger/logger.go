// Package logger writes diagnostic logs to a file so they never mix with
// terminal output or tmux popups.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/sisi-cmux/sisi/internal/config"
)

var (
	root     = slog.New(slog.NewTextHandler(io.Discard, nil))
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	mu       sync.Mutex
)

// DefaultLogPath returns the log file path under the state directory
func DefaultLogPath() (string, error) {
	dir, err := config.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sisi.log"), nil
}

// SetDebug enables or disables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes all logging there.
// Calling Init again replaces the previous destination.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	return nil
}

// SetOutput routes logging to w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Get returns the shared logger
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root
}

// WithComponent returns a logger tagged with the component name
func WithComponent(name string) *slog.Logger {
	return Get().With("component", name)
}

// Close flushes and closes the log file
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	root = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}
