package pkg

import (
	"io"
	"log/slog"
	"os"
)

// Component identifies a subsystem for log filtering.
type Component string

// ubootfs component identifiers.
const (
	ComponentConsole Component = "console"
	ComponentUBoot   Component = "uboot"
	ComponentBlock   Component = "block"
	ComponentVDisk   Component = "vdisk"
	ComponentMain    Component = "main"
)

// LogFormat specifies the output format of the default logger.
type LogFormat int

// Log format options.
const (
	LogFormatText LogFormat = iota // Text format (default)
	LogFormatJSON                  // JSON format
)

var (
	// logLevel controls the minimum log level of the default logger.
	logLevel = new(slog.LevelVar)

	// logger is the destination of the Log helpers. It is configured once
	// from the command line before any request is served.
	logger *slog.Logger
)

func init() {
	logLevel.Set(slog.LevelWarn)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// SetLogLevel sets the minimum log level for all ubootfs logging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// LogLevel returns the current minimum log level.
func LogLevel() slog.Level {
	return logLevel.Level()
}

// SetLogger replaces the default logger with a custom logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Logger returns the logger currently serving the Log helpers.
func Logger() *slog.Logger {
	return logger
}

// SetLogFormat reconfigures the default logger to write to os.Stderr in the
// specified format at the current log level.
func SetLogFormat(format LogFormat) {
	opts := &slog.HandlerOptions{Level: logLevel}
	switch format {
	case LogFormatJSON:
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	default:
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
}

// NewLogger creates a new text logger writing to the given writer at the
// package log level.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// LogDebug logs a debug message with the given component.
func LogDebug(component Component, msg string, args ...any) {
	logger.Debug(msg, append([]any{"component", string(component)}, args...)...)
}

// LogInfo logs an info message with the given component.
func LogInfo(component Component, msg string, args ...any) {
	logger.Info(msg, append([]any{"component", string(component)}, args...)...)
}

// LogWarn logs a warning message with the given component.
func LogWarn(component Component, msg string, args ...any) {
	logger.Warn(msg, append([]any{"component", string(component)}, args...)...)
}

// LogError logs an error message with the given component.
func LogError(component Component, msg string, args ...any) {
	logger.Error(msg, append([]any{"component", string(component)}, args...)...)
}
