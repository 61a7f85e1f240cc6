// Package logger provides leveled logging for the medic CLI and gateway.
// Warnings always print. When verbose mode is enabled via the --verbose
// flag, debug and info messages are printed too. Output goes to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	level             = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	base              = build(output)
)

func build(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.WarnLevel)
	}
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
	base = build(w)
}

// L returns the underlying structured logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug(fmt.Sprintf(format, args...))
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	L().Debug(fmt.Sprintf("=== %s ===", name))
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	L().Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	L().Warn(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func Error(format string, args ...any) {
	L().Error(fmt.Sprintf(format, args...))
}
