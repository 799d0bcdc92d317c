// Package twilio implements the provider.Sender contract over Twilio's
// Messages API using the official Go SDK.
//
// The adapter normalizes WhatsApp addressing (the "whatsapp:" transport
// prefix on both sides of a send), bounds each attempt with the
// configured client timeout, and maps Twilio REST rejections into the
// relay error taxonomy with their code and HTTP status preserved.
//
// The adapter performs no retries: a failed attempt is surfaced
// immediately to the caller.
package twilio
