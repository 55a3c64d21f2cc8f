// Package logger provides verbose logging for teabag.
// Logging is enabled outside production, or when the --verbose flag is set.
// Messages are printed to stderr so they never mix with command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
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

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(level, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		fmt.Fprintf(output, "[%s] %s %s\n", level, prefix, msg)
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, msg)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write("DEBUG", "", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write("INFO", "", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write("WARN", "", format, args...)
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	write("ERROR", "", format, args...)
}

// Logger writes messages tagged with a fixed prefix, e.g. "[apiClient]".
type Logger struct {
	prefix string
}

// New returns a logger that tags every message with prefix.
func New(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	write("DEBUG", l.prefix, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) {
	write("INFO", l.prefix, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func (l *Logger) Warn(format string, args ...any) {
	write("WARN", l.prefix, format, args...)
}

// Error prints an error message if verbose mode is enabled.
func (l *Logger) Error(format string, args ...any) {
	write("ERROR", l.prefix, format, args...)
}
