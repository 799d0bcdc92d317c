// Command server runs the GENIA Twilio MCP server: a WhatsApp relay
// that accepts MCP-style message envelopes over HTTP, sends them via
// Twilio, and streams the outcome back as Server-Sent Events.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, GENIA_CONFIG env, ./config.yaml, /etc/genia/config.yaml),
// then environment variables:
//
//	TWILIO_ACCOUNT_SID        - Twilio account SID
//	TWILIO_AUTH_TOKEN         - Twilio auth token
//	TWILIO_WHATSAPP_NUMBER    - sender number, e.g. "whatsapp:+14155238886"
//	GENIA_PORT / PORT         - listen port (default: 8003)
//	GENIA_BACKEND_WEBHOOK_URL - reserved backend forwarding target
//	GENIA_LOG_LEVEL           - ERROR, WARN, INFO, DEBUG, or TRACE
//	GENIA_DEBUG               - debug categories, e.g. "twilio,webhook"
//
// Missing Twilio credentials do not prevent startup: requests are then
// answered with a client-unavailable error until the server is
// restarted with credentials.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/auth"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/capability"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/config"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/debug"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider"
	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/provider/twilio"
	transporthttp "github.com/NeuroForge1/genia-mcp-server-twilio/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)
	logger := slog.Default()

	// Build the Twilio sender. A missing or broken credential set
	// degrades to an unavailable sender rather than failing startup.
	var sender provider.Sender
	if cfg.Twilio.Configured() {
		adapter, err := twilio.New(twilio.Config{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			FromNumber: cfg.Twilio.FromNumber,
			Timeout:    cfg.Twilio.Timeout,
		})
		if err != nil {
			logger.Warn("twilio client init failed, messaging disabled", "error", err)
			sender = provider.Unavailable{}
		} else {
			sender = adapter
			logger.Info("twilio client ready", "from", cfg.Twilio.FromNumber)
		}
	} else {
		logger.Warn("twilio credentials not configured, messaging disabled",
			"missing", strings.Join(cfg.Twilio.MissingCredentials(), ", "))
		sender = provider.Unavailable{}
	}

	if cfg.Webhook.BackendURL != "" {
		logger.Info("backend webhook forwarding configured but not active",
			"backend_url", cfg.Webhook.BackendURL)
	}

	dispatcher := capability.NewDispatcher(sender, logger)

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMetrics(metricsPath),
		transporthttp.WithLogger(logger),
	}

	if cfg.Webhook.ValidateSignature {
		if cfg.Twilio.AuthToken == "" {
			logger.Warn("webhook signature validation requested but no auth token configured, skipping")
		} else {
			validator := auth.NewWebhookValidator(cfg.Twilio.AuthToken, cfg.Webhook.PublicBaseURL, logger)
			opts = append(opts, transporthttp.WithWebhookMiddleware(validator.Middleware()))
			logger.Info("webhook signature validation enabled", "public_base_url", cfg.Webhook.PublicBaseURL)
		}
	}

	srv := transporthttp.NewServer(dispatcher, sender, opts...)

	logger.Info("server starting", "port", cfg.Server.Port)
	return srv.ListenAndServe()
}
