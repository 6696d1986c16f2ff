// Package keycloak is a thin client for the identity provider's admin REST
// API. Every privileged call authenticates with its own freshly acquired
// service credential (client-credentials grant); the caller's token never
// reaches the provider's admin endpoints.
package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds everything needed to reach the provider.
type Config struct {
	// BaseURL of the provider, e.g. http://localhost:8080.
	BaseURL string

	// Realm is the tenant the console administers.
	Realm string

	// ClientID/ClientSecret identify the backend's confidential service
	// client used for admin calls. The secret never leaves the backend.
	ClientID     string
	ClientSecret string

	// PublicClientID is the public client used solely for the
	// proof-of-possession password check on self password updates.
	PublicClientID string

	// Timeout for provider calls. Defaults to 10s.
	Timeout time.Duration
}

// Client calls the provider's admin API on behalf of the backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// TokenURL returns the realm's OpenID Connect token endpoint.
func (c *Client) TokenURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.cfg.BaseURL, c.cfg.Realm)
}

// JWKSURL returns the realm's published key-set endpoint.
func (c *Client) JWKSURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/certs", c.cfg.BaseURL, c.cfg.Realm)
}

// IssuerURL returns the iss value the realm stamps into tokens.
func (c *Client) IssuerURL() string {
	return fmt.Sprintf("%s/realms/%s", c.cfg.BaseURL, c.cfg.Realm)
}

// Ping checks provider reachability by fetching the realm's key set. Used
// by the readiness probe; no admin credential is needed.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.JWKSURL(), nil)
	if err != nil {
		return fmt.Errorf("keycloak: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("keycloak: ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "realm key set unavailable"}
	}
	return nil
}

// adminURL builds an admin REST URL under the configured realm.
func (c *Client) adminURL(path string) string {
	return fmt.Sprintf("%s/admin/realms/%s%s", c.cfg.BaseURL, c.cfg.Realm, path)
}

// doAdmin performs one admin API call. It acquires a service credential
// first, so callers pay one extra token round trip per operation.
func (c *Client) doAdmin(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.AcquireServiceCredential(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("keycloak: encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.adminURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("keycloak: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keycloak: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// adminJSON performs an admin call and decodes a JSON response into target.
func (c *Client) adminJSON(ctx context.Context, method, path string, body, target any) error {
	resp, err := c.doAdmin(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("keycloak: decode %s %s response: %w", method, path, err)
	}
	return nil
}
