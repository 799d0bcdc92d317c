package transport

import (
	"context"
	"testing"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

func TestMessageHandlerFuncAdapter(t *testing.T) {
	called := false
	var receivedMsg *api.Message

	fn := MessageHandlerFunc(func(ctx context.Context, msg *api.Message, w FrameWriter) error {
		called = true
		receivedMsg = msg
		return nil
	})

	// Verify it satisfies the interface.
	var _ MessageHandler = fn

	msg := &api.Message{Role: api.RoleUser, Content: &api.TextContent{Text: "hi"}}
	err := fn.HandleMessage(context.Background(), msg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected function to be called")
	}
	if receivedMsg.Content.Text != "hi" {
		t.Errorf("expected content %q, got %q", "hi", receivedMsg.Content.Text)
	}
}

func TestMessageHandlerFuncReturnsError(t *testing.T) {
	fn := MessageHandlerFunc(func(ctx context.Context, msg *api.Message, w FrameWriter) error {
		return api.NewServerError("test error")
	})

	err := fn.HandleMessage(context.Background(), &api.Message{}, nil)
	if err == nil {
		t.Fatal("expected error but got nil")
	}

	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected *api.APIError, got %T", err)
	}
	if apiErr.Type != api.ErrorTypeServerError {
		t.Errorf("expected error type %q, got %q", api.ErrorTypeServerError, apiErr.Type)
	}
}

// collectWriter is a FrameWriter that records written frames in order.
type collectWriter struct {
	messages []*api.Message
	done     int
}

func (c *collectWriter) WriteMessage(_ context.Context, msg *api.Message) error {
	c.messages = append(c.messages, msg)
	return nil
}

func (c *collectWriter) WriteDone(_ context.Context) error {
	c.done++
	return nil
}

func (c *collectWriter) Flush() error { return nil }

func TestInterfaceSatisfaction(t *testing.T) {
	// Compile-time interface checks.
	var _ MessageHandler = MessageHandlerFunc(nil)
	var _ FrameWriter = (*collectWriter)(nil)
}
