// Package transport defines the handler interfaces and middleware chain
// for the relay's HTTP/SSE transport layer.
//
// The transport layer bridges external clients and the capability
// dispatcher. It deserializes incoming requests into the envelope types
// defined in pkg/api, dispatches them for processing, and relays the
// produced frames back to the client as server-sent events.
//
// # Handler Interfaces
//
// MessageHandler is the contract between the transport layer and the
// dispatcher: it receives one validated envelope and writes its frames
// to a FrameWriter. FrameWriter abstracts the outbound event stream,
// so the dispatcher emits envelope frames and the end-of-stream marker
// without knowing the underlying transport protocol.
//
// # Middleware
//
// The middleware chain wraps MessageHandler with cross-cutting
// concerns. Built-in middleware provides panic recovery, request ID
// assignment (X-Request-ID), and structured logging via log/slog.
//
// This package uses only Go standard library packages. HTTP serving
// uses net/http with Go 1.22+ ServeMux routing patterns; structured
// logging uses log/slog.
package transport
