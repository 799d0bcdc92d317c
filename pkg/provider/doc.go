// Package provider defines the outbound messaging contract the
// capability dispatcher calls into.
//
// The Sender interface abstracts the external messaging service. The
// production implementation lives in the twilio subpackage; tests use
// in-package fakes. The Unavailable variant stands in when credentials
// are missing at startup, so every send fails deterministically instead
// of dereferencing an uninitialized client.
package provider
