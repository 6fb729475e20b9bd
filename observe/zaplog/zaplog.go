// Package zaplog adapts a *zap.Logger to the observe.Logger interface.
package zaplog

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skillsnap/portfolio/observe"
)

// Logger wraps a zap logger.
type Logger struct{ L *zap.Logger }

// New creates an adapter around l.
func New(l *zap.Logger) Logger { return Logger{L: l} }

// Level maps a textual level to its zap level. Unknown strings map to
// info, like observe.ParseLogLevel.
func Level(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewProduction builds a production zap logger at the given textual
// level, wrapped in the adapter.
func NewProduction(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(Level(level))
	l, err := cfg.Build()
	if err != nil {
		return Logger{}, err
	}
	return New(l), nil
}

func (z Logger) Info(_ context.Context, msg string, f ...observe.Field) {
	z.L.Info(msg, zf(f)...)
}

func (z Logger) Warn(_ context.Context, msg string, f ...observe.Field) {
	z.L.Warn(msg, zf(f)...)
}

func (z Logger) Error(_ context.Context, msg string, f ...observe.Field) {
	z.L.Error(msg, zf(f)...)
}

func (z Logger) Debug(_ context.Context, msg string, f ...observe.Field) {
	z.L.Debug(msg, zf(f)...)
}

func zf(fields []observe.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

var _ observe.Logger = Logger{}
