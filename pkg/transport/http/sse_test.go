package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

func TestWriteMessageSetsSSEHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEFrameWriter(rec)

	msg := &api.Message{Role: api.RoleAssistant, Content: &api.TextContent{Text: "{}"}}
	if err := w.WriteMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected SSE content type, got %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("expected no-cache, got %q", cc)
	}
	if !rec.Flushed {
		t.Error("expected frame to be flushed immediately")
	}
}

func TestWriteMessageFrameFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEFrameWriter(rec)

	msg := &api.Message{Role: api.RoleAssistant, Content: &api.TextContent{Text: `{"message_sid":"SM1"}`}}
	if err := w.WriteMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "event: message\ndata: ") {
		t.Errorf("unexpected frame prefix: %q", body)
	}
	if !strings.HasSuffix(body, "\n\n") {
		t.Errorf("frame must end with a blank line: %q", body)
	}
	if !strings.Contains(body, `"role":"assistant"`) {
		t.Errorf("frame data missing envelope: %q", body)
	}
}

func TestWriteDoneFrameFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEFrameWriter(rec)

	if err := w.WriteDone(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.Body.String(); got != "event: done\ndata: [DONE]\n\n" {
		t.Errorf("unexpected end marker frame: %q", got)
	}
}

func TestWriteDoneIsTerminal(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEFrameWriter(rec)

	if err := w.WriteDone(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.WriteDone(context.Background()); err == nil {
		t.Error("second end marker must fail")
	}

	msg := &api.Message{Role: api.RoleError, Content: &api.TextContent{Text: "{}"}}
	if err := w.WriteMessage(context.Background(), msg); err == nil {
		t.Error("message after end marker must fail")
	}
}

func TestHasStartedStreaming(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEFrameWriter(rec)

	if w.hasStartedStreaming() {
		t.Error("idle writer must not report streaming")
	}

	msg := &api.Message{Role: api.RoleAssistant, Content: &api.TextContent{Text: "{}"}}
	if err := w.WriteMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.hasStartedStreaming() {
		t.Error("writer must report streaming after first frame")
	}
}
