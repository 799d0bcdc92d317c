package api

import "fmt"

// ErrorType represents the category of a relay error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest marks malformed inbound payloads. These
	// are rejected at the HTTP boundary before dispatch.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeClientUnavailable marks calls made while the provider
	// client was never initialized (missing credentials at startup).
	ErrorTypeClientUnavailable ErrorType = "client_unavailable"

	// ErrorTypeValidation marks capability calls missing required
	// parameters.
	ErrorTypeValidation ErrorType = "validation_error"

	// ErrorTypeUnsupportedCapability marks requests for a capability
	// the dispatcher does not implement.
	ErrorTypeUnsupportedCapability ErrorType = "unsupported_capability"

	// ErrorTypeProvider marks sends the provider rejected. The provider
	// code and HTTP status are preserved on the error.
	ErrorTypeProvider ErrorType = "provider_error"

	// ErrorTypeServerError marks any other unexpected failure.
	ErrorTypeServerError ErrorType = "server_error"
)

// APIError represents a structured relay error. Param names the
// offending field for request and validation errors; ProviderCode and
// ProviderStatus are populated for provider rejections only.
type APIError struct {
	Type           ErrorType `json:"type"`
	Param          string    `json:"param,omitempty"`
	Message        string    `json:"message"`
	ProviderCode   int       `json:"provider_code,omitempty"`
	ProviderStatus int       `json:"provider_status,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the
// top-level error response on non-streaming failures.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for malformed inbound payloads.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewClientUnavailableError creates the APIError every capability call
// yields when the Twilio client was never initialized.
func NewClientUnavailableError() *APIError {
	return &APIError{
		Type:    ErrorTypeClientUnavailable,
		Message: "internal error: Twilio client not initialized",
	}
}

// NewValidationError creates an APIError for a missing or invalid
// capability parameter.
func NewValidationError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Param:   param,
		Message: message,
	}
}

// NewUnsupportedCapabilityError creates an APIError naming the requested
// capability verbatim.
func NewUnsupportedCapabilityError(capability string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnsupportedCapability,
		Message: fmt.Sprintf("unsupported capability: %q", capability),
	}
}

// NewProviderError creates an APIError carrying the provider's error
// code and HTTP status alongside its message.
func NewProviderError(code, status int, message string) *APIError {
	return &APIError{
		Type:           ErrorTypeProvider,
		Message:        message,
		ProviderCode:   code,
		ProviderStatus: status,
	}
}

// NewServerError creates an APIError for unexpected internal failures.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
