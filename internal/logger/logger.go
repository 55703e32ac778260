// Package logger provides structured logging for the harbor viewer using zap,
// with optional rotating file output through lumberjack.
package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It discards everything until Init runs,
// so packages exercised from tests can log unconditionally.
var Log = zap.NewNop()

// FileConfig holds rotation settings for the log file. An empty Path
// disables file output.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns the rotation policy for a viewer session log.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Options selects the level and the sinks of the global logger.
type Options struct {
	Level   string
	File    FileConfig
	Console io.Writer // nil disables console output
}

// ParseLevel accepts the levels the config file documents: debug, info, warn
// and error. The empty string means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func encoder(levels zapcore.LevelEncoder, times zapcore.TimeEncoder) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       times,
		EncodeLevel:      levels,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	})
}

// Build creates a logger from opts without touching the global one.
// With no sinks configured it returns a no-op logger.
func Build(opts Options) (*zap.Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core
	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(
			encoder(zapcore.CapitalColorLevelEncoder, zapcore.TimeEncoderOfLayout("15:04:05")),
			zapcore.AddSync(opts.Console),
			lvl,
		))
	}
	if f := opts.File; f.Path != "" {
		cores = append(cores, zapcore.NewCore(
			encoder(zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   f.Path,
				MaxSize:    f.MaxSizeMB,
				MaxBackups: f.MaxBackups,
				MaxAge:     f.MaxAgeDays,
				Compress:   f.Compress,
				LocalTime:  true,
			}),
			lvl,
		))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Init replaces the global logger. On error the previous one stays in place.
func Init(opts Options) error {
	l, err := Build(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Named returns a child logger tagged with a component name, e.g. "scene"
// or "renderer". The child shares the global cores, so call it after Init.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
