// Package logger provides logging for the immich-smart-albums CLI.
// Warnings and errors always go to stderr; debug messages are printed
// only when verbose mode is enabled via the --verbose flag, to help
// users understand how a selection was put together.
//
// Everything the logger writes stays off stdout, so selected asset IDs
// and URLs remain pipeable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	warnStyle  lipgloss.Style
	errorStyle lipgloss.Style
)

func init() {
	restyle(os.Stderr)
}

// restyle rebuilds the colour styles against w. The renderer probes w
// for TTY support and honours NO_COLOR, so logs piped to a file carry
// no escape codes. Callers must hold mu.
func restyle(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	warnStyle = r.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle = r.NewStyle().Foreground(lipgloss.Color("9"))
}

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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	restyle(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
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
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
	}
}

// Warn prints a warning message. Warnings are not gated on verbose
// mode: a partially failed search or an ambiguous name changes the
// result, and the user should hear about it.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintln(output, warnStyle.Render(fmt.Sprintf("[WARN] "+format, args...)))
}

// Error prints an error message. Errors are never gated.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintln(output, errorStyle.Render(fmt.Sprintf("[ERROR] "+format, args...)))
}
