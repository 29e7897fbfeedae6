// Package observability provides structured logging for the application.
package observability

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

const (
	// UserIDKey carries the acting user's id through the call stack.
	UserIDKey contextKey = "user_id"
	// ScreenKey carries the originating screen name, when known.
	ScreenKey contextKey = "screen"
)

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if uid, ok := ctx.Value(UserIDKey).(string); ok {
		r.AddAttrs(slog.String("user_id", uid))
	}
	if screen, ok := ctx.Value(ScreenKey).(string); ok {
		r.AddAttrs(slog.String("screen", screen))
	}
	return h.Handler.Handle(ctx, r)
}

// WithUserID returns a context tagged with the acting user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithScreen returns a context tagged with the originating screen name.
func WithScreen(ctx context.Context, screen string) context.Context {
	return context.WithValue(ctx, ScreenKey, screen)
}

// NewLogger builds the application logger: JSON output in production,
// readable text output everywhere else.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	level := slog.LevelInfo

	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Pretty text output for local development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(&ctxHandler{handler})
}
