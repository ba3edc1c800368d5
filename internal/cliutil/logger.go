// Package cliutil holds small helpers shared across cmd/gowasm's
// subcommands, starting with the process-wide logger.
package cliutil

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the CLI's logger instance. It is a no-op logger until
// SetLogger is called, generalizing the engine/linker logger singletons
// from wippyai-wasm-runtime into a single CLI-wide instance.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the CLI-wide logger. Must be called before any
// subcommand runs.
func SetLogger(l *zap.Logger) {
	logger = l
}
