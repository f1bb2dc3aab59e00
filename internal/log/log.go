// Package log writes plain leveled messages: results to stdout, diagnostics
// to stderr. Nothing here needs structured logging.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	debug atomic.Bool
	mu    sync.Mutex
	out   io.Writer = os.Stdout
	errw  io.Writer = os.Stderr
)

// SetDebug turns Debug output on or off.
func SetDebug(on bool) { debug.Store(on) }

// IsDebug reports whether Debug output is enabled.
func IsDebug() bool { return debug.Load() }

// SetOutput redirects Info and Error; nil leaves a stream unchanged.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errw = stderr
	}
}

func write(w *io.Writer, format string, a ...interface{}) {
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	mu.Lock()
	defer mu.Unlock()
	// errors are ignored
	_, _ = fmt.Fprintf(*w, format, a...)
}

// Info writes a formatted line to stdout.
func Info(format string, a ...interface{}) { write(&out, format, a...) }

// Error writes a formatted line to stderr.
func Error(format string, a ...interface{}) { write(&errw, format, a...) }

// Debug writes a formatted line to stderr when debug output is enabled.
func Debug(format string, a ...interface{}) {
	if debug.Load() {
		write(&errw, "DEBUG: "+format, a...)
	}
}
