package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport"
)

// rootMessage is the static liveness payload served on GET /.
const rootMessage = "GENIA Twilio MCP server is active."

// Adapter serves the relay API over HTTP. It routes requests to the
// message handler or the webhook receiver and serializes responses.
type Adapter struct {
	handler transport.MessageHandler
	webhook *webhookHandler
	mux     *http.ServeMux
	config  Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64

	// WebhookMiddleware, when set, wraps the webhook routes. Used for
	// Twilio signature verification.
	WebhookMiddleware func(http.Handler) http.Handler
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
	}
}

// NewAdapter creates an HTTP adapter with the given MessageHandler. The
// sender is used by the webhook receiver for best-effort replies; pass
// provider.Unavailable when credentials are missing. Middleware is
// applied to the MessageHandler in the given order.
func NewAdapter(handler transport.MessageHandler, sender provider.Sender, logger *slog.Logger, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if len(middlewares) > 0 {
		handler = transport.Chain(middlewares...)(handler)
	}

	a := &Adapter{
		handler: handler,
		webhook: &webhookHandler{sender: sender, logger: logger},
		mux:     http.NewServeMux(),
		config:  cfg,
	}

	var webhook http.Handler = http.HandlerFunc(a.webhook.handle)
	if cfg.WebhookMiddleware != nil {
		webhook = cfg.WebhookMiddleware(webhook)
	}

	a.mux.HandleFunc("POST /mcp", a.handleMCP)
	a.mux.Handle("POST /webhook/twilio", webhook)
	a.mux.Handle("POST /webhook/twilio/{rest...}", webhook)
	a.mux.HandleFunc("GET /", a.handleRoot)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to
// integrate with an http.Server or test with httptest. The returned
// handler includes HTTP-level middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// httpRequestIDMiddleware is HTTP-level middleware that propagates the
// X-Request-ID header. If present in the request, it is forwarded into
// the context for the transport-level RequestID middleware, and echoed
// on the response before the first write.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx := transport.ContextWithRequestID(r.Context(), id)
			r = r.WithContext(ctx)
		}
		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter wraps http.ResponseWriter to inject the
// X-Request-ID header before the first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

func (w *requestIDResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}

// handleMCP handles POST /mcp: one JSON envelope in, an SSE stream out.
func (a *Adapter) handleMCP(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var msg api.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid request format: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	if apiErr := api.ValidateMessage(&msg); apiErr != nil {
		transport.WriteErrorResponse(w, apiErr, http.StatusBadRequest)
		return
	}

	rw := newSSEFrameWriter(w)
	if err := a.handler.HandleMessage(r.Context(), &msg, rw); err != nil {
		a.writeHandlerError(w, rw, err)
	}
}

// handleRoot handles GET /: a static liveness message.
func (a *Adapter) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": rootMessage})
}

// writeHandlerError writes an error response from the handler. If
// streaming has already started, the error is shaped into an error
// envelope frame followed by the end marker; otherwise it becomes a
// standard JSON error response.
func (a *Adapter) writeHandlerError(w http.ResponseWriter, rw *sseFrameWriter, err error) {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = api.NewServerError(err.Error())
	}

	if rw.hasStartedStreaming() {
		ctx := context.Background()
		// Best effort: the writer may already be completed, in which
		// case the stream carried its frames and there is nothing to add.
		_ = rw.WriteMessage(ctx, api.NewErrorMessage(apiErr))
		_ = rw.WriteDone(ctx)
		return
	}

	transport.WriteAPIError(w, apiErr)
}
