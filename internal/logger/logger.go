// Package logger provides file-backed structured logging. The TUI owns the
// terminal, so logs never go to stdout/stderr: debug runs write JSON lines
// to a file under the configuration directory, and everything is discarded
// otherwise.
package logger

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once sync.Once

	globalZapLogger *zap.Logger
	globalLogger    logr.Logger = logr.Discard()
)

// Setup initializes the global logger once. When debug is false the logger
// stays a discard logger and path is not touched.
func Setup(debug bool, path string) error {
	var setupErr error
	once.Do(func() {
		if !debug {
			return
		}

		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}

		zapLogger, err := cfg.Build()
		if err != nil {
			setupErr = fmt.Errorf("failed to build logger: %w", err)
			return
		}

		globalZapLogger = zapLogger
		globalLogger = zapr.NewLogger(zapLogger)
	})
	return setupErr
}

// Get returns the global logger.
func Get() logr.Logger {
	return globalLogger
}

// Sync flushes buffered log entries. Safe to call when logging is off.
func Sync() {
	if globalZapLogger != nil {
		_ = globalZapLogger.Sync()
	}
}
