// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: the Logger middleware stores a
// logger tagged with the request ID in the request context, so every line a
// handler or service writes is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("course purchased", "course_id", id)
//	// → time=... level=INFO msg="course purchased" request_id=a1b2c3d4 course_id=...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the process-wide base logger. Setup replaces it.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Options selects the handler and level for Setup.
type Options struct {
	Production bool
	Level      string // debug | info | warn | error; empty picks by environment
	Output     io.Writer
	Extra      []slog.Handler // fanned out alongside the console handler
}

// New builds a logger from opts without touching the global.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := parseLevel(opts.Level, opts.Production)
	hopts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.Production {
		handler = slog.NewJSONHandler(out, hopts) // structured JSON for log aggregators
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}

	if len(opts.Extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, opts.Extra...)...)
	}
	return slog.New(handler)
}

// Setup builds a logger, installs it as L and as slog's default, and
// returns it.
func Setup(opts Options) *slog.Logger {
	L = New(opts)
	slog.SetDefault(L)
	return L
}

func parseLevel(s string, production bool) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if production {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored by InjectLogger, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
