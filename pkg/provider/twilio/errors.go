package twilio

import (
	"errors"
	"fmt"

	twclient "github.com/twilio/twilio-go/client"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

// mapSendError converts a Twilio client failure into the relay error
// taxonomy. Rejections from the REST API carry their error code and
// HTTP status; anything else (network, serialization) is wrapped as a
// generic server error.
func mapSendError(err error) *api.APIError {
	var restErr *twclient.TwilioRestError
	if errors.As(err, &restErr) {
		return api.NewProviderError(restErr.Code, restErr.Status,
			fmt.Sprintf("Twilio error: %s", restErr.Message))
	}
	return api.NewServerError(fmt.Sprintf("twilio request failed: %s", err))
}
