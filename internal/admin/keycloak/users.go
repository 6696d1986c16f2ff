package keycloak

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ListUsers fetches all users in the realm.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.adminJSON(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	if err := c.adminJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// CreateUser creates a user and returns its new id, parsed from the
// Location header the admin API responds with.
func (c *Client) CreateUser(ctx context.Context, user User) (string, error) {
	resp, err := c.doAdmin(ctx, http.MethodPost, "/users", user)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return "", err
	}

	// Location: .../admin/realms/<realm>/users/<id>
	location := resp.Header.Get("Location")
	slash := strings.LastIndex(location, "/")
	if slash < 0 || slash == len(location)-1 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "create user: missing Location header"}
	}
	return location[slash+1:], nil
}

// UpdateUser replaces mutable fields of the user representation.
func (c *Client) UpdateUser(ctx context.Context, id string, user User) error {
	return c.adminJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id), user, nil)
}

// DeleteUser deletes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.adminJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}
