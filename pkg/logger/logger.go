package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger represents a simple logger interface
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	With(keyvals ...interface{}) Logger
	Sync() error
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a new logger with the specified level.
// env selects the encoder: "production" logs JSON, anything else a console format.
func NewLogger(level, env string) Logger {
	var cfg zap.Config

	if env == "production" || env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()

	if err != nil {
		// Build only fails on unusable output paths
		l = zap.NewExample()
	}

	return &zapLogger{sugar: l.Sugar()}
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, keyvals ...interface{}) {
	l.sugar.Debugw(msg, keyvals...)
}

func (l *zapLogger) Info(msg string, keyvals ...interface{}) {
	l.sugar.Infow(msg, keyvals...)
}

func (l *zapLogger) Warn(msg string, keyvals ...interface{}) {
	l.sugar.Warnw(msg, keyvals...)
}

func (l *zapLogger) Error(msg string, keyvals ...interface{}) {
	l.sugar.Errorw(msg, keyvals...)
}

// With returns a child logger that always carries the given key/value pairs
func (l *zapLogger) With(keyvals ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(keyvals...)}
}

// Sync flushes any buffered log entries
func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}
