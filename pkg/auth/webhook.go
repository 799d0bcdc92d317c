package auth

import (
	"log/slog"
	"net/http"
	"strings"

	twclient "github.com/twilio/twilio-go/client"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/observability"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport"
)

// signatureHeader carries the HMAC Twilio computes over the callback
// URL and its form parameters.
const signatureHeader = "X-Twilio-Signature"

// WebhookValidator checks Twilio callback signatures against the
// account auth token.
type WebhookValidator struct {
	validator twclient.RequestValidator
	baseURL   string
	logger    *slog.Logger
}

// NewWebhookValidator creates a validator for callbacks delivered to
// publicBaseURL. The base URL must match the scheme and host Twilio
// was configured with, since both ends sign the full callback URL.
func NewWebhookValidator(authToken, publicBaseURL string, logger *slog.Logger) *WebhookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookValidator{
		validator: twclient.NewRequestValidator(authToken),
		baseURL:   strings.TrimSuffix(publicBaseURL, "/"),
		logger:    logger,
	}
}

// Middleware rejects requests whose signature is missing or does not
// verify. Well-signed requests pass through with their form already
// parsed.
func (v *WebhookValidator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signature := r.Header.Get(signatureHeader)
			if signature == "" {
				v.reject(w, r, "missing signature header")
				return
			}

			if err := r.ParseForm(); err != nil {
				v.reject(w, r, "unparseable form payload")
				return
			}

			params := make(map[string]string, len(r.PostForm))
			for key := range r.PostForm {
				params[key] = r.PostForm.Get(key)
			}

			url := v.baseURL + r.URL.RequestURI()
			if !v.validator.Validate(url, params, signature) {
				v.reject(w, r, "signature mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (v *WebhookValidator) reject(w http.ResponseWriter, r *http.Request, reason string) {
	v.logger.Warn("rejected webhook callback",
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"reason", reason)
	observability.WebhookRequestsTotal.WithLabelValues("forbidden").Inc()
	transport.WriteErrorResponse(w,
		api.NewInvalidRequestError("", "webhook signature verification failed"),
		http.StatusForbidden,
	)
}
