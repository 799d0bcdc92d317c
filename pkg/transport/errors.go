package transport

import (
	"encoding/json"
	"net/http"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

// HTTPStatusFromError maps an APIError type to the corresponding HTTP
// status code. Only malformed requests fail at the HTTP level; every
// dispatch-time error becomes an error frame on the stream instead, so
// the non-400 mappings are a backstop for boundary failures.
func HTTPStatusFromError(err *api.APIError) int {
	switch err.Type {
	case api.ErrorTypeInvalidRequest, api.ErrorTypeValidation:
		return http.StatusBadRequest
	case api.ErrorTypeProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes a JSON error response using the
// ErrorResponse wrapper format from pkg/api. It sets the Content-Type
// header and writes the HTTP status code.
func WriteErrorResponse(w http.ResponseWriter, apiErr *api.APIError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

// WriteAPIError writes an APIError response, deriving the HTTP status
// code from the error type.
func WriteAPIError(w http.ResponseWriter, apiErr *api.APIError) {
	WriteErrorResponse(w, apiErr, HTTPStatusFromError(apiErr))
}
