package logx

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/simry/schema"
)

type contextKey int

const (
	windowKey contextKey = iota
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return pslog.Ctx(ctx)
}

// WithWindow annotates the logger with the window id if present.
func WithWindow(ctx context.Context, windowID schema.WindowID) pslog.Logger {
	log := Ctx(ctx)
	if windowID != "" {
		if ctx != nil {
			if current, ok := ctx.Value(windowKey).(schema.WindowID); ok && current == windowID {
				return log
			}
		}
		log = log.With("window", windowID)
	}
	return log
}

// WithBuffer annotates the logger with buffer metadata when available.
func WithBuffer(log pslog.Logger, ref schema.BufferRef) pslog.Logger {
	if ref.ID != "" {
		log = log.With("buffer", ref.ID)
	}
	if ref.Name != "" {
		log = log.With("buffer_name", ref.Name)
	}
	return log
}

// ContextWithWindow stores the window marker on the context for log de-duplication.
func ContextWithWindow(ctx context.Context, windowID schema.WindowID) context.Context {
	if ctx == nil || windowID == "" {
		return ctx
	}
	return context.WithValue(ctx, windowKey, windowID)
}

// ContextWithWindowLogger attaches the logger and window marker to the context.
func ContextWithWindowLogger(ctx context.Context, log pslog.Logger, windowID schema.WindowID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithWindow(ctx, windowID)
}
