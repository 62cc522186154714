// Package logger provides the store's structured, levelled logger built on
// log/slog.
//
// The console tags every line written during a login with the customer's
// name through WithCtx:
//
//	ctx = logger.InjectLogger(ctx, logger.L.With("customer", name))
//	logger.WithCtx(ctx).Info("cart saved", "rows", 3)
//	// → time=... level=INFO msg="cart saved" customer=Sara rows=3
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newHandler(os.Stderr, config.AppEnv()))
	slog.SetDefault(L)
}

func newHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// The console owns stdout, so dev logs stay quiet below WARN unless asked.
		level := slog.LevelWarn
		if config.Get("LOG_LEVEL", "") == "debug" {
			level = slog.LevelDebug
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
}

// Use replaces the base logger, e.g. to fan out into MongoDB as well.
func Use(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

// Handler returns the handler behind the base logger.
func Handler() slog.Handler { return L.Handler() }

// ctxKey is the unexported key used to store a per-session *slog.Logger.
type ctxKey struct{}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log into ctx.
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
