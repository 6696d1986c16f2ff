package keycloak

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrConflict reports a duplicate identity (username or email taken).
	ErrConflict = errors.New("keycloak: resource already exists")

	// ErrNotFound reports a missing user, role or credential.
	ErrNotFound = errors.New("keycloak: not found")

	// ErrInvalidCredentials reports a failed password verification.
	ErrInvalidCredentials = errors.New("keycloak: invalid credentials")
)

// APIError carries the provider's own error text for operator diagnosis.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("keycloak: upstream returned %d", e.StatusCode)
	}
	return fmt.Sprintf("keycloak: upstream returned %d: %s", e.StatusCode, e.Message)
}

// IsEmailSendFailure reports whether the error looks like the provider's
// "no SMTP configured" failure when dispatching an action email. The
// provider may still have registered the required action in that case.
func IsEmailSendFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusInternalServerError ||
		strings.Contains(apiErr.Message, "Failed to send execute actions email")
}

// checkResponse maps a non-2xx admin API response to a typed error,
// consuming the body. The provider reports errors as either
// {"errorMessage": "..."} or {"error": "..."}.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		}
		return ErrConflict
	case http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return ErrNotFound
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed struct {
		ErrorMessage string `json:"errorMessage"`
		Error        string `json:"error"`
		Description  string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return strings.TrimSpace(string(raw))
	}

	switch {
	case parsed.ErrorMessage != "":
		return parsed.ErrorMessage
	case parsed.Description != "":
		return parsed.Description
	case parsed.Error != "":
		return parsed.Error
	default:
		return strings.TrimSpace(string(raw))
	}
}
