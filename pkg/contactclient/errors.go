package contactclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnreachable is returned when no HTTP response was received.
	ErrUnreachable = errors.New("contactclient: server unreachable")
)

// APIError is a non-2xx response from the contact API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contactclient: API error %d: %s", e.StatusCode, e.Message)
}

func parseAPIError(statusCode int, body []byte) error {
	var wrapper struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error != "" {
		return &APIError{StatusCode: statusCode, Message: wrapper.Error}
	}
	return &APIError{StatusCode: statusCode, Message: http.StatusText(statusCode)}
}
