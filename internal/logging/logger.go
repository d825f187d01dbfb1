// Package logging wraps charmbracelet/log for the CLI and the driver. The
// format core does not log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default logger.
var (
	mu            sync.RWMutex
	defaultLogger *log.Logger
)

// New creates a logger writing to stderr at level. Unknown levels mean
// info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "formatkit",
		ReportTimestamp: false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel accepts debug, info, warn or warning, and error in any case.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	l, err := log.ParseLevel(level)
	if err != nil || level == "" {
		return log.InfoLevel
	}
	return l
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	if logger != nil {
		return logger
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// ErrorValue renders err for a log field. Stack traces and error details
// are only included when logger is at debug level.
func ErrorValue(logger *log.Logger, err error) string {
	if err == nil {
		return ""
	}
	if logger.GetLevel() <= log.DebugLevel {
		return fmt.Sprintf("%+v", err)
	}
	return err.Error()
}
