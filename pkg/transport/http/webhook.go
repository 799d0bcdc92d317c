package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/debug"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/observability"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport"
)

// apologyBody is the best-effort reply sent when handling an inbound
// message fails internally.
const apologyBody = "Sorry, something went wrong while processing your message. Please try again later."

// webhookHandler receives inbound Twilio callbacks (incoming WhatsApp
// messages). Twilio expects a fast acknowledgement; once the payload is
// well formed the handler always answers 200 with an empty JSON object,
// whatever happens internally, so Twilio does not retry delivery.
type webhookHandler struct {
	sender provider.Sender
	logger *slog.Logger
}

func (h *webhookHandler) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		observability.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid form payload: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	body := r.PostFormValue("Body")
	from := r.PostFormValue("From")
	to := r.PostFormValue("To")
	profileName := r.PostFormValue("ProfileName")

	debug.Log("webhook", "callback received", "path", r.URL.Path, "from", from, "body_len", len(body))

	if from == "" {
		observability.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("From", "'From' field is required"),
			http.StatusBadRequest,
		)
		return
	}
	if body == "" {
		observability.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("Body", "'Body' field is required"),
			http.StatusBadRequest,
		)
		return
	}

	h.receive(r.Context(), from, to, profileName, body)

	observability.WebhookRequestsTotal.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, "{}")
}

// receive processes one inbound message. Internal failures never reach
// the webhook response: they are logged, answered to the user with a
// best-effort apology, and swallowed.
func (h *webhookHandler) receive(ctx context.Context, from, to, profileName, body string) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.ErrorContext(ctx, "webhook handling failed",
				"from", from,
				"panic", rec)
			h.sendApology(ctx, from)
		}
	}()

	h.logger.InfoContext(ctx, "incoming whatsapp message",
		"from", from,
		"to", to,
		"profile_name", profileName,
		"body", body)

	// Forwarding to the GENIA backend is intentionally not wired up;
	// inbound messages are logged and acknowledged only.
}

// sendApology tries to tell the original sender that processing failed.
// A failure of this send is logged and swallowed.
func (h *webhookHandler) sendApology(ctx context.Context, from string) {
	if h.sender == nil || !h.sender.Available() {
		return
	}
	if _, err := h.sender.Send(ctx, from, apologyBody); err != nil {
		h.logger.WarnContext(ctx, "apology send failed", "from", from, "error", err)
	}
}
