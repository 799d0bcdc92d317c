package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport"
)

// echoHandler writes one canned envelope and the end marker.
type echoHandler struct {
	result *api.Message
	err    error
	calls  int
}

func (h *echoHandler) HandleMessage(ctx context.Context, msg *api.Message, w transport.FrameWriter) error {
	h.calls++
	if h.err != nil {
		return h.err
	}
	if err := w.WriteMessage(ctx, h.result); err != nil {
		return err
	}
	return w.WriteDone(ctx)
}

// sseEvent is one parsed frame from an SSE body.
type sseEvent struct {
	event string
	data  string
}

// parseSSE splits an SSE body into its frames.
func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, block := range strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n") {
		var ev sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			default:
				t.Fatalf("unexpected SSE line: %q", line)
			}
		}
		events = append(events, ev)
	}
	return events
}

func newTestAdapter(h transport.MessageHandler) *Adapter {
	return NewAdapter(h, nil, nil, DefaultConfig())
}

func postMCP(t *testing.T, a *Adapter, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestMCPStreamsResultAndEndMarker(t *testing.T) {
	result, err := api.NewAssistantMessage(&api.SendResult{MessageSID: "SM123", Status: "queued"})
	if err != nil {
		t.Fatalf("building result: %v", err)
	}
	a := newTestAdapter(&echoHandler{result: result})

	rec := postMCP(t, a, `{"role":"user","content":{"text":""},"metadata":{"capability":"send_whatsapp_message","params":{"to":"+1555","body":"hello"}}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected SSE content type, got %q", ct)
	}

	events := parseSSE(t, rec.Body.String())
	if len(events) != 2 {
		t.Fatalf("expected 2 frames, got %d: %+v", len(events), events)
	}
	if events[0].event != "message" || events[1].event != "done" {
		t.Errorf("unexpected frame sequence: %+v", events)
	}
	if events[1].data != "[DONE]" {
		t.Errorf("unexpected end marker data: %q", events[1].data)
	}

	var envelope api.Message
	if err := json.Unmarshal([]byte(events[0].data), &envelope); err != nil {
		t.Fatalf("frame data is not a JSON envelope: %v", err)
	}
	if envelope.Role != api.RoleAssistant {
		t.Errorf("expected assistant role, got %q", envelope.Role)
	}
	var sendResult api.SendResult
	if err := json.Unmarshal([]byte(envelope.Content.Text), &sendResult); err != nil {
		t.Fatalf("content text is not embedded JSON: %v", err)
	}
	if sendResult.MessageSID != "SM123" {
		t.Errorf("unexpected message SID: %q", sendResult.MessageSID)
	}
}

func TestMCPRejectsMalformedJSON(t *testing.T) {
	h := &echoHandler{}
	a := newTestAdapter(h)

	rec := postMCP(t, a, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if h.calls != 0 {
		t.Error("handler must not run for malformed input")
	}

	var resp api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp.Error.Type != api.ErrorTypeInvalidRequest {
		t.Errorf("expected invalid_request, got %q", resp.Error.Type)
	}
}

func TestMCPRejectsStructurallyInvalidEnvelope(t *testing.T) {
	h := &echoHandler{}
	a := newTestAdapter(h)

	// Valid JSON, but no content field.
	rec := postMCP(t, a, `{"role":"user"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if h.calls != 0 {
		t.Error("handler must not run before validation passes")
	}
}

func TestMCPRejectsWrongContentType(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader("Body=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}

func TestMCPRejectsOversizedBody(t *testing.T) {
	a := NewAdapter(&echoHandler{}, nil, nil, Config{MaxBodySize: 64})

	rec := postMCP(t, a, `{"role":"user","content":{"text":"`+strings.Repeat("x", 128)+`"}}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestMCPHandlerErrorBeforeStreaming(t *testing.T) {
	a := newTestAdapter(&echoHandler{err: api.NewServerError("dispatch blew up")})

	rec := postMCP(t, a, `{"role":"user","content":{"text":""}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRootLiveness(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("liveness body is not JSON: %v", err)
	}
	if body["message"] == "" {
		t.Error("expected a descriptive message")
	}
}

func TestRequestIDEchoedOnResponse(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("expected request ID echo, got %q", got)
	}
}

func postWebhook(t *testing.T, a *Adapter, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhookAcknowledgesInboundMessage(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	rec := postWebhook(t, a, "/webhook/twilio", url.Values{
		"Body":        {"hi"},
		"From":        {"whatsapp:+15551234567"},
		"To":          {"whatsapp:+14005550000"},
		"ProfileName": {"Ada"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "{}" {
		t.Errorf("expected empty JSON object, got %q", got)
	}
}

func TestWebhookSubpathRoute(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	rec := postWebhook(t, a, "/webhook/twilio/inbound/extra", url.Values{
		"Body": {"hi"},
		"From": {"+15551234567"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWebhookRejectsMissingBody(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	rec := postWebhook(t, a, "/webhook/twilio", url.Values{
		"From": {"+15551234567"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Body") {
		t.Errorf("expected descriptive message, got %q", rec.Body.String())
	}
}

func TestWebhookRejectsMissingFrom(t *testing.T) {
	a := newTestAdapter(&echoHandler{})

	rec := postWebhook(t, a, "/webhook/twilio", url.Values{
		"Body": {"hi"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
