// Package config provides unified configuration for the GENIA Twilio
// MCP server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (TWILIO_* and GENIA_* prefixes)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Twilio        TwilioConfig        `yaml:"twilio"`
	Webhook       WebhookConfig       `yaml:"webhook"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LoggingConfig holds log level and debug category settings. The
// GENIA_LOG_LEVEL and GENIA_DEBUG environment variables take
// precedence over these fields.
type LoggingConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8003
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 120s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MiB
}

// TwilioConfig holds Twilio REST API credentials and messaging settings.
// Credentials are optional at startup: when any of them is missing the
// server still comes up and reports the client as unavailable.
type TwilioConfig struct {
	AccountSID    string        `yaml:"account_sid"`
	AuthToken     string        `yaml:"auth_token"`
	AuthTokenFile string        `yaml:"auth_token_file"` // _file variant for auth_token
	FromNumber    string        `yaml:"from_number"`     // WhatsApp sender, e.g. "whatsapp:+14155238886"
	Timeout       time.Duration `yaml:"timeout"`         // per-request timeout, default: 30s
}

// Configured reports whether all credentials needed to construct a
// Twilio client are present.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// WebhookConfig holds inbound-message handling settings.
type WebhookConfig struct {
	// BackendURL is the GENIA backend endpoint inbound messages would
	// be forwarded to. Reserved: forwarding is not wired up yet, the
	// field is accepted so deployments can set it ahead of time.
	BackendURL string `yaml:"backend_url"`

	// ValidateSignature enables X-Twilio-Signature verification on
	// webhook callbacks. Requires PublicBaseURL and the auth token.
	ValidateSignature bool `yaml:"validate_signature"`

	// PublicBaseURL is the externally visible base URL Twilio signs
	// callbacks against, e.g. "https://relay.example.com".
	PublicBaseURL string `yaml:"public_base_url"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8003,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     1 << 20,
		},
		Twilio: TwilioConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
