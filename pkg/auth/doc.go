// Package auth verifies that inbound webhook callbacks genuinely come
// from Twilio, using the X-Twilio-Signature request header.
//
// Validation is opt-in: it needs the publicly reachable base URL the
// callback was signed against, which only the deployment knows.
package auth
