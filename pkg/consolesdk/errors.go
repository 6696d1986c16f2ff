package consolesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when the access token has expired and the
// refresh token can no longer renew it. The caller must log in again.
var ErrSessionExpired = errors.New("consolesdk: session expired, login required")

// APIError is an error response from the console backend or the identity
// provider's token endpoint.
type APIError struct {
	// StatusCode is the HTTP status the server answered with
	StatusCode int

	// Message is the server's error text
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("consolesdk: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("consolesdk: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is an APIError with status 403.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsConflict reports whether err is an APIError with status 409.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// parseErrorResponse turns a non-2xx response body into an *APIError. The
// console answers {"error": "..."}; the provider's token endpoint answers
// {"error": "...", "error_description": "..."}.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var parsed struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Error
	if parsed.Description != "" {
		msg = parsed.Description
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
