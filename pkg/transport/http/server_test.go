package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider"
)

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]ServerOption{WithLogger(logger)}, opts...)
	handler := &echoHandler{result: api.NewErrorMessage(api.NewClientUnavailableError())}
	return NewServer(handler, provider.Unavailable{}, opts...)
}

func TestServerMountsMetrics(t *testing.T) {
	srv := newTestServer(t, WithMetrics("/metrics"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want prometheus exposition", ct)
	}
}

func TestServerWithoutMetrics(t *testing.T) {
	srv := newTestServer(t, WithMetrics(""))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	// With the endpoint disabled the catch-all liveness route answers.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 from liveness route", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "genia_") {
		t.Error("metrics exposition must not be served when disabled")
	}
}

func TestServerAppliesOptions(t *testing.T) {
	srv := newTestServer(t,
		WithAddr(":9999"),
		WithTimeouts(5*time.Second, 10*time.Second),
		WithShutdownTimeout(time.Second),
		WithMaxBodySize(512),
	)

	if srv.httpServer.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", srv.httpServer.Addr)
	}
	if srv.httpServer.ReadTimeout != 5*time.Second || srv.httpServer.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts = %s/%s, want 5s/10s", srv.httpServer.ReadTimeout, srv.httpServer.WriteTimeout)
	}
	if srv.config.ShutdownTimeout != time.Second {
		t.Errorf("shutdown timeout = %s, want 1s", srv.config.ShutdownTimeout)
	}
	if srv.config.MaxBodySize != 512 {
		t.Errorf("max body size = %d, want 512", srv.config.MaxBodySize)
	}
}

func TestServerRoutesMCPThroughMiddleware(t *testing.T) {
	srv := newTestServer(t, WithMetrics(""))

	req := httptest.NewRequest(http.MethodPost, "/mcp",
		strings.NewReader(`{"role":"user","content":{"text":"hi"}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "srv-test-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "srv-test-1" {
		t.Errorf("X-Request-ID = %q, want echo through the full stack", got)
	}
}
