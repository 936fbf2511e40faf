package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger provides structured logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	base           *zap.Logger
	zl             *zap.Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance writing human-readable lines to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return newLogger(component, verboseChecker, consoleCore(os.Stderr))
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWriter creates a logger writing JSON lines to w
func NewWriter(component string, w io.Writer, verboseChecker VerboseChecker) *Logger {
	return newLogger(component, verboseChecker, jsonCore(zapcore.AddSync(w)))
}

// NewFile creates a logger appending JSON lines to path. The parent
// directory is created when missing. Used while the TUI owns the terminal.
func NewFile(component, path string, verboseChecker VerboseChecker) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// #nosec G304 - path comes from configuration
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return newLogger(component, verboseChecker, jsonCore(zapcore.Lock(file))), nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return newLogger("", nil, zapcore.NewNopCore())
}

func newLogger(component string, verboseChecker VerboseChecker, core zapcore.Core) *Logger {
	base := zap.New(core)
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		base:           base,
		zl:             base.Named(componentName(component)),
	}
}

func componentName(component string) string {
	if component == "" {
		return "main"
	}
	return component
}

func consoleCore(w io.Writer) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "timestamp",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "message",
		EncodeTime:       zapcore.TimeEncoderOfLayout("[15:04:05.000]"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       func(name string, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString("[" + name + "]") },
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), zapcore.DebugLevel)
}

func jsonCore(ws zapcore.WriteSyncer) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "component",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), ws, zapcore.DebugLevel)
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		base:           l.base,
		zl:             l.base.Named(componentName(component)),
	}
}

// Component returns the component name
func (l *Logger) Component() string {
	return l.component
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.zl.Debug(fmt.Sprintf(msg, args...))
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.zl.Info(fmt.Sprintf(msg, args...))
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zl.Warn(fmt.Sprintf(msg, args...))
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.zl.Error(fmt.Sprintf(msg, args...))
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.zl.Debug(fmt.Sprintf(msg, args...), toZap(fields)...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.zl.Info(fmt.Sprintf(msg, args...), toZap(fields)...)
	}
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.zl.Warn(fmt.Sprintf(msg, args...), toZap(fields)...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.base.Sync()
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			out = append(out, zap.NamedError(field.Key, err))
			continue
		}
		out = append(out, zap.Any(field.Key, field.Value))
	}
	return out
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
