// Package logging holds the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger *log.Logger
)

// New builds a logger writing to w with the scanline prefix.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "scanline",
		Level:           level,
	})
}

// Logger returns the shared logger. It writes warnings and errors to stderr
// until SetLogger or SetLevel changes it.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = New(os.Stderr, log.WarnLevel)
	}
	return logger
}

// SetLogger replaces the shared logger.
func SetLogger(l *log.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetLevel changes the level of the shared logger.
func SetLevel(level log.Level) {
	Logger().SetLevel(level)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}

// ParseLevel parses debug, info, warn, error or fatal.
func ParseLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
