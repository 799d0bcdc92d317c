package transport

import (
	"context"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

// MessageHandler handles one inbound envelope. The implementation
// receives a structurally validated message and writes the resulting
// frames (one result envelope, then the end-of-stream marker) to the
// FrameWriter.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *api.Message, w FrameWriter) error
}

// MessageHandlerFunc is an adapter that allows using an ordinary
// function as a MessageHandler.
type MessageHandlerFunc func(ctx context.Context, msg *api.Message, w FrameWriter) error

// HandleMessage calls f(ctx, msg, w).
func (f MessageHandlerFunc) HandleMessage(ctx context.Context, msg *api.Message, w FrameWriter) error {
	return f(ctx, msg, w)
}

// FrameWriter abstracts the outbound event stream for the handler. The
// transport layer creates a FrameWriter for each request; the handler
// emits envelope frames followed by exactly one end-of-stream marker.
//
// Frames are relayed in the order written, each flushed as soon as it
// is produced. After WriteDone the stream is closed: further writes of
// either kind return an error.
type FrameWriter interface {
	// WriteMessage emits one envelope frame. Returns an error if the
	// stream has already been closed by WriteDone.
	WriteMessage(ctx context.Context, msg *api.Message) error

	// WriteDone emits the end-of-stream marker and closes the stream.
	// It must be called exactly once per request; a second call
	// returns an error.
	WriteDone(ctx context.Context) error

	// Flush ensures buffered data is sent to the client. Returns an
	// error if the client has disconnected.
	Flush() error
}
