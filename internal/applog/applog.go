// SPDX-License-Identifier: MPL-2.0

// Package applog wires the process-wide operational logger. It is
// intentionally separate from pkg/fyaml.Diagnostic: diagnostics are
// structured, machine-readable findings about the fragment tree being
// packed, while applog carries free-form operational chatter (which
// entries the scanner skipped and why, timing, internal state) that a
// user only wants to see under --verbose.
package applog

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "fyaml",
		Level:  log.WarnLevel,
	})
)

// SetVerbose switches the package logger to debug level. Called once from
// root.go's cobra.OnInitialize hook after flags are parsed.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.WarnLevel)
}

// Logger returns the process-wide logger.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Debug logs an operational detail, visible only under --verbose.
func Debug(msg string, keyvals ...any) {
	Logger().Debug(msg, keyvals...)
}

// Warn logs an operational warning, always visible.
func Warn(msg string, keyvals ...any) {
	Logger().Warn(msg, keyvals...)
}
