package transport

import (
	"context"
	"fmt"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to server error returns. The server continues to
// accept new requests after a panic is recovered.
func Recovery() Middleware {
	return func(next MessageHandler) MessageHandler {
		return MessageHandlerFunc(func(ctx context.Context, msg *api.Message, w FrameWriter) (retErr error) {
			defer func() {
				if r := recover(); r != nil {
					retErr = api.NewServerError(fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next.HandleMessage(ctx, msg, w)
		})
	}
}
