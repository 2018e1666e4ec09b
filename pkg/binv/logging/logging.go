// Package logging provides file-backed component loggers shared by the
// CLI and TUI. The TUI owns the terminal, so log output always goes to a
// file under $XDG_STATE_HOME/binv, never to the console.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger := logging.Get("store")
//	logger.Info("loaded install log", "records", n)
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Config configures the logging system.
type Config struct {
	// Level is the log level: debug, info, warn, error.
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	Path string
}

// state holds the global logging state. Before Init is called all
// loggers write to io.Discard.
type state struct {
	mu          sync.Mutex
	initialized bool
	file        *os.File
	level       log.Level
	loggers     map[string]*log.Logger
}

var globalState = &state{
	loggers: make(map[string]*log.Logger),
	level:   log.InfoLevel,
}

// Init opens the log file and configures the level. It must be called
// before loggers produce output; loggers obtained earlier are rebound to
// the new sink.
func Init(cfg Config) error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	if globalState.file != nil {
		_ = globalState.file.Close()
	}
	globalState.file = f
	globalState.level = level
	globalState.initialized = true

	// Rebind loggers handed out before Init.
	for component := range globalState.loggers {
		globalState.loggers[component] = newLogger(component)
	}

	return nil
}

// Get returns the logger for the given component, creating it on first
// use. Before Init, loggers are silent.
func Get(component string) *log.Logger {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}
	logger := newLogger(component)
	globalState.loggers[component] = logger
	return logger
}

// newLogger creates a component logger bound to the current sink.
// Must be called with globalState.mu held.
func newLogger(component string) *log.Logger {
	var w io.Writer = io.Discard
	if globalState.initialized {
		w = globalState.file
	}
	return log.NewWithOptions(w, log.Options{
		Level:           globalState.level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          component,
	})
}

// Close flushes and closes the log file.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if !globalState.initialized {
		return nil
	}
	globalState.initialized = false
	globalState.loggers = make(map[string]*log.Logger)

	if globalState.file != nil {
		if err := globalState.file.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
		globalState.file = nil
	}
	return nil
}

// DefaultLogPath returns $XDG_STATE_HOME/binv/binv.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "binv", "binv.log")
}
