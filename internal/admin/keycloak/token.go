package keycloak

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AcquireServiceCredential performs a client-credentials exchange and
// returns a fresh service-level token for the admin API.
//
// The credential is deliberately NOT cached across calls: each privileged
// operation re-authenticates, trading one extra round trip for zero
// token-lifecycle state in the backend. The exchange is idempotent and the
// provider rate-limits it.
func (c *Client) AcquireServiceCredential(ctx context.Context) (*oauth2.Token, error) {
	cc := clientcredentials.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		TokenURL:     c.TokenURL(),
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("keycloak: acquire service credential: %w", err)
	}
	return token, nil
}

// VerifyUserPassword checks a username/password pair by attempting a
// resource-owner password grant against the realm's public client. Used as
// a proof-of-possession check before self-service password changes; the
// issued token is discarded.
func (c *Client) VerifyUserPassword(ctx context.Context, username, password string) error {
	conf := oauth2.Config{
		ClientID: c.cfg.PublicClientID,
		Endpoint: oauth2.Endpoint{TokenURL: c.TokenURL()},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	_, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		switch retrieveErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusBadRequest:
			return ErrInvalidCredentials
		}
	}
	return fmt.Errorf("keycloak: password verification: %w", err)
}
