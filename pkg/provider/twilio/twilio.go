package twilio

import (
	"context"
	"fmt"
	"strings"
	"time"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/debug"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/observability"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider"
)

// addressPrefix is the transport prefix Twilio requires on WhatsApp
// addresses.
const addressPrefix = "whatsapp:"

// DefaultTimeout bounds a single send attempt. Twilio answers a create
// call synchronously; an attempt that has not completed within this
// window is surfaced as an error.
const DefaultTimeout = 30 * time.Second

// Config holds the credentials and outbound number for the adapter.
type Config struct {
	AccountSID string
	AuthToken  string
	// FromNumber is the single configured outbound WhatsApp number.
	FromNumber string
	// Timeout bounds one send attempt. Zero means DefaultTimeout.
	Timeout time.Duration
}

// messageCreator is the slice of the Twilio REST client the adapter
// uses. Tests substitute a fake.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Adapter sends WhatsApp messages through Twilio's Messages API.
type Adapter struct {
	api  messageCreator
	from string
}

var _ provider.Sender = (*Adapter)(nil)

// New creates an Adapter from the given credentials. All three of
// account SID, auth token, and from number are required; callers with
// incomplete credentials should install provider.Unavailable instead.
func New(cfg Config) (*Adapter, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio: account SID, auth token, and from number are required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client.SetTimeout(timeout)

	return &Adapter{api: client.Api, from: cfg.FromNumber}, nil
}

// Available reports true; a constructed Adapter always has a client.
func (a *Adapter) Available() bool { return true }

// Send delivers one message. Both the recipient and the configured
// outbound number are normalized with the whatsapp: prefix before the
// call. The provider's message SID and status are passed through
// verbatim on success.
func (a *Adapter) Send(ctx context.Context, to, body string) (*api.SendResult, error) {
	// The SDK bounds the call with the client timeout rather than a
	// context; honor caller cancellation before spending the attempt.
	if err := ctx.Err(); err != nil {
		return nil, api.NewServerError(fmt.Sprintf("send cancelled: %s", err))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(NormalizeAddress(to))
	params.SetFrom(NormalizeAddress(a.from))
	params.SetBody(body)

	debug.Log("twilio", "creating message", "to", NormalizeAddress(to), "body_len", len(body))

	start := time.Now()
	msg, err := a.api.CreateMessage(params)
	observability.ProviderLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues("error").Inc()
		return nil, mapSendError(err)
	}
	observability.ProviderRequestsTotal.WithLabelValues("ok").Inc()
	debug.Log("twilio", "message created", "duration", time.Since(start))

	result := &api.SendResult{}
	if msg.Sid != nil {
		result.MessageSID = *msg.Sid
	}
	if msg.Status != nil {
		result.Status = *msg.Status
	}
	return result, nil
}

// NormalizeAddress prepends the whatsapp: transport prefix when absent.
// Already-prefixed addresses pass through unchanged, so normalization
// is idempotent.
func NormalizeAddress(addr string) string {
	if strings.HasPrefix(addr, addressPrefix) {
		return addr
	}
	return addressPrefix + addr
}
