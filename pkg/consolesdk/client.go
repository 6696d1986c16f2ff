package consolesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the realm administration console. It talks to
// two hosts: the identity provider's token endpoint for login and refresh,
// and the console backend for everything else.
type SDKClient struct {
	// BaseURL of the console backend, e.g. http://localhost:3000
	BaseURL string

	// TokenURL is the provider's OpenID Connect token endpoint, e.g.
	// http://localhost:8080/realms/learning-realm/protocol/openid-connect/token
	TokenURL string

	// ClientID is the provider's public client the console logs in through
	ClientID string

	HTTPClient *http.Client
}

// NewSDKClient creates a console client.
func NewSDKClient(baseURL, tokenURL, clientID string) *SDKClient {
	return &SDKClient{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		TokenURL: tokenURL,
		ClientID: clientID,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates a username/password pair against the provider and
// returns an authenticated session with automatic token refresh.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	tokenResp, err := c.PasswordGrant(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return newSession(c, tokenResp), nil
}

// NewSessionFromTokens creates a session from previously stored tokens.
// The session still performs auto-refresh when the access token expires.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second)
	expiresAt = expiresAt.Add(-expiryBuffer)

	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiresAt,
	}
}
