package jwtx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
)

// JWKSConfig controls how the provider's key set is fetched and refreshed.
type JWKSConfig struct {
	// URL is the provider's JWKS endpoint, e.g.
	// <server>/realms/<realm>/protocol/openid-connect/certs.
	URL string

	// RefreshInterval between background key refreshes. Zero disables
	// background refresh (keys fetched once on first use).
	RefreshInterval time.Duration

	// HTTPClient overrides the client used for JWKS fetches.
	HTTPClient *http.Client
}

// NewRemoteVerifier builds a Verifier backed by the provider's JWKS endpoint
// with background key refresh. The verifier starts even if the provider is
// unreachable; the first fetch is retried on demand.
func NewRemoteVerifier(cfg JWKSConfig, opts VerifyOptions, logger *slog.Logger) (*RemoteVerifier, error) {
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	storage, err := jwkset.NewStorageFromHTTP(cfg.URL, jwkset.HTTPClientStorageOptions{
		Client:                    client,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           cfg.RefreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("jwks refresh failed", "url", cfg.URL, "err", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: create jwks storage: %w", err)
	}

	kf, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("jwtx: create keyfunc: %w", err)
	}

	return NewVerifierWithKeyfunc(kf.Keyfunc, opts), nil
}
