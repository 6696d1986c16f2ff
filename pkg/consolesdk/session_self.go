package consolesdk

import (
	"context"
	"net/http"
	"strconv"
)

// Self-service operations on the caller's own account.

// UpdatePassword changes the caller's own password. The current password is
// re-verified server-side before anything changes; a wrong current password
// returns an APIError with status 401 and leaves the account untouched.
func (s *Session) UpdatePassword(ctx context.Context, currentPassword, newPassword string) (*MessageResponse, error) {
	req := UpdatePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/update-password", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMFAStatus reports whether the caller has a configured second factor.
// A pending setup (initiated but never completed at login) reports false.
func (s *Session) GetMFAStatus(ctx context.Context) (*MFAStatusResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users/me/mfa-status", nil)
	if err != nil {
		return nil, err
	}

	var status MFAStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetMFAStatus toggles the caller's MFA state. Enabling only primes the
// next login with a setup step; disabling takes effect immediately.
func (s *Session) SetMFAStatus(ctx context.Context, enable bool) (*MessageResponse, error) {
	req := SetMFAStatusRequest{Enable: enable}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/users/me/mfa-status", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetProtected calls the authenticated echo endpoint. Mostly useful for
// verifying that a session's token is accepted by the backend.
func (s *Session) GetProtected(ctx context.Context) (*ProtectedResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/protected", nil)
	if err != nil {
		return nil, err
	}

	var protected ProtectedResponse
	if err := decodeJSON(resp, &protected, http.StatusOK); err != nil {
		return nil, err
	}
	return &protected, nil
}

// ListAudit retrieves recent audit entries, newest first. Requires the
// admin role. A limit of 0 uses the server default.
func (s *Session) ListAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	path := "/api/audit"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var entries []AuditEntry
	if err := decodeJSON(resp, &entries, http.StatusOK); err != nil {
		return nil, err
	}
	return entries, nil
}
