package provider

import (
	"context"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

// Sender delivers one outbound WhatsApp message. Implementations send
// from a single process-wide configured number; only the recipient and
// body vary per call.
type Sender interface {
	// Send delivers body to the given address and returns the provider's
	// result. A rejected send fails with an *api.APIError of type
	// provider_error carrying the provider code and status; any other
	// failure is wrapped as a server error. One attempt, no retries.
	Send(ctx context.Context, to, body string) (*api.SendResult, error)

	// Available reports whether the underlying client was initialized.
	// The dispatcher checks this before routing any capability.
	Available() bool
}

// Unavailable is the Sender installed when provider credentials are
// missing at startup. Every call fails with a client-unavailable error.
type Unavailable struct{}

var _ Sender = Unavailable{}

// Send always fails with a client-unavailable error.
func (Unavailable) Send(ctx context.Context, to, body string) (*api.SendResult, error) {
	return nil, api.NewClientUnavailableError()
}

// Available reports false.
func (Unavailable) Available() bool { return false }
