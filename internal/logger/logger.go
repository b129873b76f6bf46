// Package logger provides diagnostic logging for docsync.
// Warnings and errors are always written; debug and info messages only
// when verbose mode is enabled via the --verbose flag. Output goes to stderr
// as slog text records so every line carries key/value attributes.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base    *slog.Logger
	level   = new(slog.LevelVar)
)

func init() {
	level.Set(slog.LevelWarn)
	rebuild()
}

// rebuild recreates the handler (caller must hold mu or be in init).
func rebuild() {
	base = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// L returns the underlying slog logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns a logger carrying args on every record, e.g. a run ID.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// Debug logs a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	L().Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs an informational message if verbose mode is enabled.
func Info(msg string, args ...any) {
	L().Log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs a warning.
func Warn(msg string, args ...any) {
	L().Log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs an error.
func Error(msg string, args ...any) {
	L().Log(context.Background(), slog.LevelError, msg, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
