package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for valid values. Missing Twilio
// credentials are not an error: the server starts without them and
// reports the messaging client as unavailable instead.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be a usable TCP port.
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}

	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	if c.Twilio.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("twilio.timeout must be > 0, got %s", c.Twilio.Timeout))
	}

	if c.Webhook.ValidateSignature && c.Webhook.PublicBaseURL == "" {
		errs = append(errs, fmt.Errorf("webhook.public_base_url is required when webhook.validate_signature is enabled"))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}

// MissingCredentials lists the credential fields that are unset. Useful
// for the startup warning when the Twilio client cannot be constructed.
func (t TwilioConfig) MissingCredentials() []string {
	var missing []string
	if t.AccountSID == "" {
		missing = append(missing, "twilio.account_sid")
	}
	if t.AuthToken == "" {
		missing = append(missing, "twilio.auth_token")
	}
	if t.FromNumber == "" {
		missing = append(missing, "twilio.from_number")
	}
	return missing
}
