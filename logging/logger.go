// Package logging carries a structured logger through the generator's context.
package logging

import (
	"context"
)

// Logger is the logging surface of the generator. Every call takes the context of the operation
// being logged, followed by the message and key/value pairs.
type Logger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	// With returns a Logger that adds args to every message.
	With(args ...any) Logger
}

// Discard drops every message.
var Discard Logger = discard{}

// DefaultLogger is returned by FromContext for a context without a Logger.
var DefaultLogger = Discard

type contextKey struct{}

// Context returns a copy of ctx carrying logger.
func Context(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the Logger stored by Context, falling back to DefaultLogger and then Discard.
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(contextKey{}).(Logger); ok && logger != nil {
		return logger
	}
	if DefaultLogger != nil {
		return DefaultLogger
	}
	return Discard
}

type discard struct{}

func (discard) DebugContext(context.Context, string, ...any) {}
func (discard) InfoContext(context.Context, string, ...any)  {}
func (discard) WarnContext(context.Context, string, ...any)  {}
func (discard) ErrorContext(context.Context, string, ...any) {}
func (d discard) With(...any) Logger                         { return d }
