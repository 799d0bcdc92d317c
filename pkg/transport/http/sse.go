package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport"
)

// writerState tracks the state of an SSE FrameWriter.
type writerState int

const (
	writerIdle      writerState = iota // Initial state, no writes yet
	writerStreaming                    // WriteMessage has been called at least once
	writerCompleted                    // End-of-stream marker sent
)

// sseFrameWriter implements transport.FrameWriter for HTTP/SSE
// responses. Each frame is written in SSE format and flushed
// immediately; the end marker transitions the writer to its terminal
// state so it can only be sent once.
type sseFrameWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController

	mu    sync.Mutex
	state writerState
}

var _ transport.FrameWriter = (*sseFrameWriter)(nil)

// newSSEFrameWriter creates a FrameWriter wrapping an http.ResponseWriter.
func newSSEFrameWriter(w http.ResponseWriter) *sseFrameWriter {
	return &sseFrameWriter{
		w:  w,
		rc: http.NewResponseController(w),
	}
}

// WriteMessage sends a single envelope frame, formatted as:
//
//	event: message\n
//	data: {json}\n
//	\n
func (s *sseFrameWriter) WriteMessage(ctx context.Context, msg *api.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == writerCompleted {
		return errors.New("cannot write message: stream is completed")
	}

	s.ensureHeaders()

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", api.EventMessage, data); err != nil {
		return fmt.Errorf("failed to write message frame: %w", err)
	}
	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	return nil
}

// WriteDone sends the end-of-stream marker, formatted as:
//
//	event: done\n
//	data: [DONE]\n
//	\n
//
// A second call returns an error.
func (s *sseFrameWriter) WriteDone(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == writerCompleted {
		return errors.New("end-of-stream marker already written")
	}

	s.ensureHeaders()
	s.state = writerCompleted

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", api.EventDone, api.DoneData); err != nil {
		return fmt.Errorf("failed to write end marker: %w", err)
	}
	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush end marker: %w", err)
	}

	return nil
}

// Flush ensures buffered data is sent to the client.
func (s *sseFrameWriter) Flush() error {
	return s.rc.Flush()
}

// ensureHeaders sets the SSE headers on the first write. Callers must
// hold s.mu.
func (s *sseFrameWriter) ensureHeaders() {
	if s.state == writerIdle {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.state = writerStreaming
	}
}

// hasStartedStreaming returns true if at least one frame has been written.
func (s *sseFrameWriter) hasStartedStreaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != writerIdle
}
