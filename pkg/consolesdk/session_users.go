package consolesdk

import (
	"context"
	"net/http"
	"net/url"
)

// User management operations. All of these require an elevated role on the
// server side: listing is open to any authenticated user, creation requires
// admin, deletion requires admin or manager.

// ListUsers retrieves all users in the realm with their business roles.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a new user. Requires the admin role.
// The response may carry a Warning when the user was created but a
// follow-up step (role mapping, invitation email) failed.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/users", req)
	if err != nil {
		return nil, err
	}

	var created CreateUserResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteUser deletes a user by id. Requires the admin or manager role.
func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// TriggerPasswordReset fires a password-reset email at the target user.
// Requires the admin role. The returned message explains the outcome; when
// the realm has no mail transport the call still succeeds with an
// explanatory message.
func (s *Session) TriggerPasswordReset(ctx context.Context, userID string) (*MessageResponse, error) {
	path := "/api/users/" + url.PathEscape(userID) + "/reset-password"
	resp, err := s.doAuthRequest(ctx, http.MethodPut, path, nil)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}
