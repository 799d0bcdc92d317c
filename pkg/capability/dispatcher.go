package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport"
)

// SendWhatsAppMessage is the one capability the dispatcher implements.
const SendWhatsAppMessage = "send_whatsapp_message"

// Dispatcher routes validated envelopes to capability implementations
// and writes the outcome to the frame stream. It holds no per-request
// state; the sender is read-only after construction, so a single
// Dispatcher serves concurrent requests.
type Dispatcher struct {
	sender provider.Sender
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given sender. Pass
// provider.Unavailable when credentials were missing at startup; a nil
// logger falls back to slog.Default.
func NewDispatcher(sender provider.Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

var _ transport.MessageHandler = (*Dispatcher)(nil)

// HandleMessage dispatches one envelope: exactly one result frame is
// written, then the end-of-stream marker. The marker goes out on every
// exit path, exactly once.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *api.Message, w transport.FrameWriter) (err error) {
	defer func() {
		if doneErr := w.WriteDone(ctx); doneErr != nil && err == nil {
			err = doneErr
		}
	}()

	inv := InvocationFromMessage(msg)
	result := d.process(ctx, inv)
	return w.WriteMessage(ctx, result)
}

// process produces the single result envelope for an invocation.
func (d *Dispatcher) process(ctx context.Context, inv Invocation) *api.Message {
	// An uninitialized client short-circuits before any routing or
	// validation, whatever the requested capability.
	if d.sender == nil || !d.sender.Available() {
		return api.NewErrorMessage(api.NewClientUnavailableError())
	}

	switch inv.Capability {
	case SendWhatsAppMessage:
		return d.sendWhatsAppMessage(ctx, inv)
	default:
		return api.NewErrorMessage(api.NewUnsupportedCapabilityError(inv.Capability))
	}
}

func (d *Dispatcher) sendWhatsAppMessage(ctx context.Context, inv Invocation) *api.Message {
	to, ok := inv.stringParam("to")
	if !ok {
		return api.NewErrorMessage(api.NewValidationError("to",
			"parameter 'to' is required for send_whatsapp_message"))
	}
	body, ok := inv.stringParam("body")
	if !ok {
		return api.NewErrorMessage(api.NewValidationError("body",
			"parameter 'body' is required for send_whatsapp_message"))
	}

	result, err := d.sender.Send(ctx, to, body)
	if err != nil {
		return d.sendError(ctx, inv, err)
	}

	d.logger.InfoContext(ctx, "whatsapp message sent",
		"user_id", inv.UserID,
		"message_sid", result.MessageSID,
		"status", result.Status)

	out, err := api.NewAssistantMessage(result)
	if err != nil {
		return api.NewErrorMessage(api.NewServerError(
			fmt.Sprintf("unexpected error sending message via %s: %s", SendWhatsAppMessage, err)))
	}
	return out
}

// sendError shapes a provider failure into an error envelope. Provider
// rejections keep their diagnostics; anything else is wrapped with the
// capability name and logged in full server-side.
func (d *Dispatcher) sendError(ctx context.Context, inv Invocation, err error) *api.Message {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Type == api.ErrorTypeProvider {
		d.logger.WarnContext(ctx, "provider rejected send",
			"user_id", inv.UserID,
			"provider_code", apiErr.ProviderCode,
			"provider_status", apiErr.ProviderStatus,
			"error", apiErr.Message)
		return api.NewErrorMessage(apiErr)
	}

	d.logger.ErrorContext(ctx, "unexpected send failure",
		"user_id", inv.UserID,
		"capability", SendWhatsAppMessage,
		"error", err)
	return api.NewErrorMessage(api.NewServerError(
		fmt.Sprintf("unexpected error sending message via %s: %s", SendWhatsAppMessage, err)))
}
