// Package logging defines the leveled logging contract used across ecimark.
// It mirrors the interface exposed by github.com/goliatone/go-logger so the
// gologger adapter can satisfy it directly, while callers that do not care
// about logs can fall back to NoOp.
package logging

import (
	"context"
	"maps"
)

// Logger is the leveled logging contract expected by pipeline components.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// Provider exposes named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// WithFields attaches fields when the logger supports FieldsLogger and
// returns the logger unchanged otherwise.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// Named returns the logger registered under name, or NoOp when provider is
// nil or returns nothing.
func Named(provider Provider, name string) Logger {
	if provider == nil {
		return NoOp()
	}
	if logger := provider.GetLogger(name); logger != nil {
		return WithFields(logger, map[string]any{"module": name})
	}
	return NoOp()
}

type noopLogger struct{}

// NoOp returns a logger that discards every entry.
func NoOp() Logger { return noopLogger{} }

func (noopLogger) Trace(string, ...any)                 {}
func (noopLogger) Debug(string, ...any)                 {}
func (noopLogger) Info(string, ...any)                  {}
func (noopLogger) Warn(string, ...any)                  {}
func (noopLogger) Error(string, ...any)                 {}
func (noopLogger) Fatal(string, ...any)                 {}
func (n noopLogger) WithContext(context.Context) Logger { return n }
func (n noopLogger) WithFields(map[string]any) Logger   { return n }
