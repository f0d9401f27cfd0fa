package corpora

import (
	"fmt"
	"log"
	"log/slog"
)

// Logger is a minimal printf-style logging interface.
// It's compatible with the standard library log.Logger and popular logging
// frameworks. Most callers should use StructuredLogger instead; a printf
// logger can be adapted with WrapPrintfLogger().
type Logger interface {
	// Printf logs a formatted message.
	Printf(format string, v ...any)
}

// StructuredLogger provides structured logging support for the library.
// This is the preferred logging interface and is compatible with Go 1.21's
// slog package and similar structured logging libraries.
//
// Use the logger options to configure:
//
//	dm, _ := corpora.NewHTTPDownloadManager(
//	    corpora.WithDownloadLogger(corpora.NewSlogAdapter(slog.Default())),
//	)
type StructuredLogger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

// printfLoggerWrapper wraps a printf-style logger to implement StructuredLogger.
type printfLoggerWrapper struct {
	logger Logger
}

// WrapPrintfLogger wraps a printf-style Logger (like *log.Logger) to implement
// StructuredLogger. All messages are logged at the same level with formatted
// key-value pairs appended.
func WrapPrintfLogger(l Logger) StructuredLogger {
	return &printfLoggerWrapper{logger: l}
}

// WrapStdLogger wraps a standard library *log.Logger to implement StructuredLogger.
// This is a convenience function equivalent to WrapPrintfLogger(l).
func WrapStdLogger(l *log.Logger) StructuredLogger {
	return &printfLoggerWrapper{logger: &defaultLogger{logger: l}}
}

func (w *printfLoggerWrapper) Debug(msg string, args ...any) {
	w.logger.Printf("[DEBUG] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Info(msg string, args ...any) {
	w.logger.Printf("[INFO] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Warn(msg string, args ...any) {
	w.logger.Printf("[WARN] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Error(msg string, args ...any) {
	w.logger.Printf("[ERROR] " + msg + formatArgs(args))
}

// Ensure printfLoggerWrapper implements StructuredLogger.
var _ StructuredLogger = (*printfLoggerWrapper)(nil)

// defaultLogger wraps the standard library logger.
type defaultLogger struct {
	logger *log.Logger
}

func (l *defaultLogger) Printf(format string, v ...any) {
	l.logger.Printf(format, v...)
}

// formatArgs formats structured logging arguments as a string.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	result := " |"
	for i := 0; i < len(args)-1; i += 2 {
		key := args[i]
		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}
		result += fmt.Sprintf(" %v=%v", key, value)
	}
	return result
}

// NopLogger is a logger that discards all log messages.
// Use this to disable logging entirely.
type NopLogger struct{}

// Printf implements Logger.Printf.
func (NopLogger) Printf(format string, v ...any) {}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

// Ensure NopLogger implements both interfaces.
var (
	_ Logger           = NopLogger{}
	_ StructuredLogger = NopLogger{}
)

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
// This allows seamless integration with Go 1.21+'s structured logging.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	dm, _ := corpora.NewHTTPDownloadManager(
//	    corpora.WithDownloadLogger(corpora.NewSlogAdapter(logger)),
//	)
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// WithGroup returns a new SlogAdapter with a log group prefix.
func (a *SlogAdapter) WithGroup(name string) *SlogAdapter {
	return &SlogAdapter{
		logger: a.logger.WithGroup(name),
	}
}

// With returns a new SlogAdapter with the given attributes added.
func (a *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{
		logger: a.logger.With(args...),
	}
}
