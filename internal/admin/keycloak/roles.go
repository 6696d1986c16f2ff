package keycloak

import (
	"context"
	"net/http"
	"net/url"
)

// FindRoleByName looks up a realm role by name. Returns ErrNotFound when
// the role does not exist.
func (c *Client) FindRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role
	if err := c.adminJSON(ctx, http.MethodGet, "/roles/"+url.PathEscape(name), nil, &role); err != nil {
		return Role{}, err
	}
	return role, nil
}

// AddRealmRoleMappings assigns realm roles to a user.
func (c *Client) AddRealmRoleMappings(ctx context.Context, userID string, roles []Role) error {
	path := "/users/" + url.PathEscape(userID) + "/role-mappings/realm"
	return c.adminJSON(ctx, http.MethodPost, path, roles, nil)
}

// ListCompositeRealmRoleMappings fetches the user's effective realm roles,
// including roles inherited through composites.
func (c *Client) ListCompositeRealmRoleMappings(ctx context.Context, userID string) ([]Role, error) {
	var roles []Role
	path := "/users/" + url.PathEscape(userID) + "/role-mappings/realm/composite"
	if err := c.adminJSON(ctx, http.MethodGet, path, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
