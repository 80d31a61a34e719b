package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/toastify-dev/toastify/pkg/protocol"
)

// Call is one client message addressed to a session.
type Call struct {
	SessionID string
	Message   *protocol.Message
}

// Handler processes a call.
type Handler func(ctx context.Context, call *Call) error

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain wraps h with mws. The first middleware runs first.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// Logging logs every call at debug level and failures at warn level.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "messages")

	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) error {
			start := time.Now()
			err := next(ctx, call)
			attrs := []any{
				"session", call.SessionID,
				"type", call.Message.Type,
				"duration", time.Since(start),
			}
			if call.Message.ID != "" {
				attrs = append(attrs, "id", call.Message.ID)
			}
			if err != nil {
				logger.Warn("message failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("message handled", attrs...)
			}
			return err
		}
	}
}
