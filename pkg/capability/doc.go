// Package capability routes inbound envelopes to the operations the
// relay implements.
//
// The Dispatcher derives a capability invocation from request metadata,
// validates its parameters, calls the provider, and shapes every
// outcome (success, validation failure, provider rejection, unexpected
// failure, unknown capability, uninitialized client) into exactly one
// result frame followed by exactly one end-of-stream marker.
package capability
