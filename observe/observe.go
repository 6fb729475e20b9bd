// Package observe provides the logging and metrics primitives used
// across the portfolio core.
package observe

import "context"

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// F constructs a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// NopLogger discards everything. Use when logging is disabled.
type NopLogger struct{}

func (NopLogger) Info(context.Context, string, ...Field)  {}
func (NopLogger) Warn(context.Context, string, ...Field)  {}
func (NopLogger) Error(context.Context, string, ...Field) {}
func (NopLogger) Debug(context.Context, string, ...Field) {}

var _ Logger = NopLogger{}
