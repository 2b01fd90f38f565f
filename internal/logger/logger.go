package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// Init replaces the global logger. level is a zap level name ("debug",
// "info", ...); asJSON selects the JSON encoder over the console one.
func Init(level string, asJSON bool) error {
	const op = "logger.Init"

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if !asJSON {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	global = l
	return nil
}

func Sync() { _ = global.Sync() }

type Logger struct {
	l *zap.Logger
}

func With(fields ...Field) Logger {
	return Logger{l: global.With(fields...)}
}

func (l Logger) Debug(_ context.Context, msg string, fields ...Field) {
	l.l.Debug(msg, fields...)
}

func (l Logger) Info(_ context.Context, msg string, fields ...Field) {
	l.l.Info(msg, fields...)
}

func (l Logger) Warn(_ context.Context, msg string, fields ...Field) {
	l.l.Warn(msg, fields...)
}

func (l Logger) Error(_ context.Context, msg string, fields ...Field) {
	l.l.Error(msg, fields...)
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	Logger{l: global}.Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	Logger{l: global}.Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	Logger{l: global}.Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	Logger{l: global}.Error(ctx, msg, fields...)
}
