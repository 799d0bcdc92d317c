package api

import "encoding/json"

// Message roles. Requests arrive as "user"; successful results are
// "assistant" and failures are "error".
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

// TextContent holds the textual payload of a message envelope. On
// responses the text is itself a JSON document (a SendResult on success,
// an ErrorPayload on failure); clients parse the embedded JSON rather
// than the envelope fields.
type TextContent struct {
	Text string `json:"text"`
}

// Message is the uniform request/response envelope. Metadata is only
// consumed on inbound requests, where it carries the capability name,
// its parameters, and an optional user ID; responses leave it unset.
type Message struct {
	Role     string         `json:"role"`
	Content  *TextContent   `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SendResult is the provider's answer to a successful send, passed
// through verbatim into the success envelope's content text.
type SendResult struct {
	MessageSID string `json:"message_sid"`
	Status     string `json:"status"`
}

// ErrorDetails carries provider-level diagnostics on a rejected send.
type ErrorDetails struct {
	ProviderCode   int `json:"provider_code"`
	ProviderStatus int `json:"provider_status"`
}

// ErrorPayload is the JSON document embedded in an error envelope's
// content text. Details is only present for provider rejections.
type ErrorPayload struct {
	Message string        `json:"message"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// NewAssistantMessage wraps a result payload in an assistant-role
// envelope, JSON-encoding the payload into the content text.
func NewAssistantMessage(payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Role:    RoleAssistant,
		Content: &TextContent{Text: string(data)},
	}, nil
}

// NewErrorMessage shapes an APIError into an error-role envelope.
// Provider diagnostics are included as details when present.
func NewErrorMessage(apiErr *APIError) *Message {
	payload := ErrorPayload{Message: apiErr.Message}
	if apiErr.Type == ErrorTypeProvider {
		payload.Details = &ErrorDetails{
			ProviderCode:   apiErr.ProviderCode,
			ProviderStatus: apiErr.ProviderStatus,
		}
	}
	// ErrorPayload contains only plain values; this cannot fail.
	data, _ := json.Marshal(payload)
	return &Message{
		Role:    RoleError,
		Content: &TextContent{Text: string(data)},
	}
}
