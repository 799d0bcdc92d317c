// Package api defines the wire types for the GENIA Twilio relay.
//
// This package provides the uniform message envelope exchanged on the
// /mcp endpoint, the payload documents embedded in envelope content,
// the error taxonomy, structural validation, and the stream event types
// used on the outbound SSE channel.
//
// The package has zero external dependencies (Go standard library only)
// and performs no I/O. The envelope shape, including the convention that
// content.text holds a JSON-encoded payload, is a compatibility contract
// with existing GENIA clients and must not change.
//
// Core types:
//   - [Message]: the request/response envelope (role, text content, optional metadata)
//   - [SendResult]: the provider's answer to a successful send
//   - [ErrorPayload]: the error document embedded in error envelopes
//   - [APIError]: structured error with type, param, and message
package api
