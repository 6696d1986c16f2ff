package keycloak

import (
	"context"
	"net/http"
	"net/url"
)

// GetCredentials lists the user's registered credentials.
func (c *Client) GetCredentials(ctx context.Context, userID string) ([]Credential, error) {
	var creds []Credential
	path := "/users/" + url.PathEscape(userID) + "/credentials"
	if err := c.adminJSON(ctx, http.MethodGet, path, nil, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// DeleteCredential removes a single credential from the user.
func (c *Client) DeleteCredential(ctx context.Context, userID, credentialID string) error {
	path := "/users/" + url.PathEscape(userID) + "/credentials/" + url.PathEscape(credentialID)
	return c.adminJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ResetPassword sets a new password credential on the user.
func (c *Client) ResetPassword(ctx context.Context, userID string, cred Credential) error {
	path := "/users/" + url.PathEscape(userID) + "/reset-password"
	return c.adminJSON(ctx, http.MethodPut, path, cred, nil)
}
