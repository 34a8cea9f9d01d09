// Package logger provides verbose logging for fleetdesk.
// Debug, Info and Warn lines are emitted only when verbose mode is enabled
// with --verbose. Error lines are always emitted. The console redirects the
// output to a log file because the alternate screen owns the terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level tags a log line.
type Level string

// Log levels, in increasing severity.
const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs and returns the previous one.
// A nil writer discards output.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	if w == nil {
		w = io.Discard
	}
	output = w
	return prev
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && level != LevelError {
		return
	}
	fmt.Fprintf(output, "["+string(level)+"] "+format+"\n", args...)
}
