package keycloak

import (
	"context"
	"net/http"
	"net/url"
)

// ExecuteActionsEmail asks the provider to email the user a link that walks
// them through the given required actions (e.g. UPDATE_PASSWORD). Fails
// with an APIError when the realm has no mail transport configured; see
// IsEmailSendFailure.
func (c *Client) ExecuteActionsEmail(ctx context.Context, userID string, actions []string) error {
	path := "/users/" + url.PathEscape(userID) + "/execute-actions-email"
	return c.adminJSON(ctx, http.MethodPut, path, actions, nil)
}
