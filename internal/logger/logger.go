// Package logger prints pipeline diagnostics for the docvault CLI.
// Nothing is written unless verbose mode is on, so ingestion and
// retrieval stay silent in normal use and narrate each stage to
// stderr under --verbose.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var verbose atomic.Bool

var out = struct {
	sync.Mutex
	w io.Writer
}{w: os.Stderr}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput redirects verbose logs away from os.Stderr. Tests use it
// to capture output.
func SetOutput(w io.Writer) {
	out.Lock()
	out.w = w
	out.Unlock()
}

// emit formats and writes one line while holding the writer lock, so
// concurrent ingestion goroutines never interleave output.
func emit(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	out.Lock()
	fmt.Fprintf(out.w, format, args...)
	out.Unlock()
}

// Debug prints a debug message.
func Debug(format string, args ...any) {
	emit("[DEBUG] "+format+"\n", args...)
}

// Section prints a header separating pipeline stages.
func Section(name string) {
	emit("\n=== %s ===\n", name)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	emit("[INFO] "+format+"\n", args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	emit("[WARN] "+format+"\n", args...)
}
