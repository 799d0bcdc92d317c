package capability

import "github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"

// unknownUser is logged when a request carries no user ID.
const unknownUser = "unknown_user"

// Invocation is the capability call derived from an envelope's
// metadata. It is constructed per request and discarded after dispatch.
type Invocation struct {
	Capability string
	Params     map[string]any
	UserID     string
}

// InvocationFromMessage extracts the capability, its parameters, and
// the optional user ID from request metadata. Absent or mistyped
// entries default to empty: an empty capability routes to the
// unsupported-capability error, and empty params fail parameter
// validation downstream.
func InvocationFromMessage(msg *api.Message) Invocation {
	inv := Invocation{UserID: unknownUser, Params: map[string]any{}}
	if msg == nil || msg.Metadata == nil {
		return inv
	}
	if v, ok := msg.Metadata["capability"].(string); ok {
		inv.Capability = v
	}
	if v, ok := msg.Metadata["params"].(map[string]any); ok {
		inv.Params = v
	}
	if v, ok := msg.Metadata["user_id"].(string); ok && v != "" {
		inv.UserID = v
	}
	return inv
}

// stringParam reads a string-typed parameter. Missing, empty, or
// non-string values all report absent.
func (inv Invocation) stringParam(name string) (string, bool) {
	v, ok := inv.Params[name].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
