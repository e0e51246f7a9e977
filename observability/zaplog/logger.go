// Package zaplog adapts go.uber.org/zap to the core.Logger interface.
package zaplog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/beehive-go/beehive/core"
)

// Logger wraps a *zap.Logger behind core.Logger.
type Logger struct {
	base *zap.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps an existing zap logger. A nil logger yields a no-op adapter.
func New(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{base: base}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.base.Debug(msg, zapFields(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.base.Info(msg, zapFields(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.base.Warn(msg, zapFields(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.base.Error(msg, zapFields(fields)...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

func zapFields(fields []core.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

// Options controls Build.
type Options struct {
	// Level is the minimum level for stdout output: debug, info, warn or error.
	// Defaults to info.
	Level string
	// Encoding selects the output format: json or console. Defaults to json.
	Encoding string
}

// Build constructs a ready-to-use adapter that writes warn-and-below to stdout
// and errors to stderr.
func Build(opts Options) (*Logger, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("zaplog: parse level %q: %w", level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if opts.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return atomicLevel.Enabled(lvl) && lvl < zapcore.ErrorLevel
	})

	stdoutCore := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lowPriority)
	stderrCore := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority)

	return New(zap.New(zapcore.NewTee(stdoutCore, stderrCore), zap.AddCaller())), nil
}
