package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

// Logging returns middleware that emits structured log entries for each
// dispatched envelope. The log entry includes the request ID (from
// context), the requested capability, duration, and whether the
// dispatch succeeded or failed.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next MessageHandler) MessageHandler {
		return MessageHandlerFunc(func(ctx context.Context, msg *api.Message, w FrameWriter) error {
			start := time.Now()
			requestID := RequestIDFromContext(ctx)

			err := next.HandleMessage(ctx, msg, w)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("capability", capabilityOf(msg)),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)
			}

			return err
		})
	}
}

// capabilityOf reads the capability name from request metadata for
// logging. Absent or non-string values log as empty.
func capabilityOf(msg *api.Message) string {
	if msg == nil || msg.Metadata == nil {
		return ""
	}
	capability, _ := msg.Metadata["capability"].(string)
	return capability
}
