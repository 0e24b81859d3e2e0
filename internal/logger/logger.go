// Package logger provides structured logging for swordfish.
// Messages below warn level are only written in verbose mode, which is
// enabled via the --verbose flag. Components obtain a child logger tagged
// with their name through Component.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	base = zerolog.New(gate{}).With().Timestamp().Logger()
)

// gate forwards log lines to the current output, dropping anything below
// warn level unless verbose mode is on. Loggers derived from base therefore
// follow later SetVerbose and SetOutput calls.
type gate struct{}

func (gate) Write(p []byte) (int, error) {
	return gate{}.WriteLevel(zerolog.NoLevel, p)
}

func (gate) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose && level < zerolog.WarnLevel && level != zerolog.NoLevel {
		return len(p), nil
	}
	return output.Write(p)
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
// Defaults to os.Stderr. Wrap w in zerolog.ConsoleWriter for human output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Component returns a logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	return base.With().Str("cmp", name).Logger()
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	base.Debug().Msg(fmt.Sprintf(format, args...))
}

// Section logs a section marker in verbose mode.
func Section(name string) {
	base.Info().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message.
func Info(format string, args ...any) {
	base.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a warning. Warnings are written even when not verbose.
func Warn(format string, args ...any) {
	base.Warn().Msg(fmt.Sprintf(format, args...))
}
