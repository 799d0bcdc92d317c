package api

// ValidateMessage checks the structural invariants of an inbound
// envelope: role and content must be present. The content text itself
// may be empty, and metadata is an optional open-ended mapping.
// Returns an *APIError describing the first failure, or nil if the
// envelope is valid.
func ValidateMessage(msg *Message) *APIError {
	if msg == nil {
		return NewInvalidRequestError("", "request body is required")
	}
	if msg.Role == "" {
		return NewInvalidRequestError("role", "role is required")
	}
	if msg.Content == nil {
		return NewInvalidRequestError("content", "content.text is required")
	}
	return nil
}
